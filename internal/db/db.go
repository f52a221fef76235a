// internal/db/db.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/models"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var DB *sql.DB

var errNotInitialized = errors.New("database is not initialized")

// migrationsDir resolves <project root>/migrations from this file's location,
// so that tests and the binary find the same files.
func migrationsDir() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("could not resolve the path of db.go to locate migrations")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "..", "..", "migrations"), nil
}

func RunMigrations(dbConn *sql.DB, dbName string) error {
	driverInstance, err := mysql.WithInstance(dbConn, &mysql.Config{
		DatabaseName: dbName,
	})
	if err != nil {
		return fmt.Errorf("create mysql migration driver: %w", err)
	}

	migrationsPath, err := migrationsDir()
	if err != nil {
		return err
	}
	migrationsURL := "file://" + migrationsPath
	slog.Info("Resolved migrations path", "path", migrationsPath, "url", migrationsURL)

	m, err := migrate.NewWithDatabaseInstance(migrationsURL, "mysql", driverInstance)
	if err != nil {
		return fmt.Errorf("create migrate instance for '%s': %w", migrationsURL, err)
	}

	slog.Info("Applying migrations...", "path", migrationsURL)
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, verr := m.Version()
		if verr != nil {
			slog.Error("Could not read migration status after a failed Up", "migration_error", err, "status_error", verr)
		} else {
			slog.Error("Migrations failed", "current_version", version, "dirty_state", dirty, "error_up", err)
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("Migrations: no change.")
	} else {
		slog.Info("Migrations applied.")
	}
	return nil
}

// BuildDSN assembles the driver DSN from the database config. multiStatements
// is always on because the migration files hold several statements each.
func BuildDSN(dbCfg config.DatabaseConfig) (string, error) {
	if dbCfg.Path != "" {
		return BuildDSNFromPath(dbCfg.Path)
	}
	if dbCfg.Host != "" && dbCfg.User != "" && dbCfg.DBName != "" {
		port := dbCfg.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&multiStatements=true",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			port,
			dbCfg.DBName,
		), nil
	}
	return "", fmt.Errorf("not enough parameters to connect: DSN or Host+User+DBName required")
}

// BuildDSNFromPath normalises a full DSN (optionally prefixed with mysql://).
func BuildDSNFromPath(path string) (string, error) {
	dsn := strings.TrimPrefix(strings.TrimSpace(path), "mysql://")
	if dsn == "" {
		return "", fmt.Errorf("empty DSN")
	}
	if !strings.Contains(dsn, "multiStatements=true") {
		if strings.Contains(dsn, "?") {
			dsn += "&multiStatements=true"
		} else {
			dsn += "?multiStatements=true"
		}
	}
	if !strings.Contains(dsn, "parseTime=true") {
		dsn += "&parseTime=true"
	}
	return dsn, nil
}

// databaseName extracts the schema name from a DSN for the migration driver.
func databaseName(dsn string) string {
	slash := strings.LastIndex(dsn, "/")
	if slash < 0 {
		return ""
	}
	name := dsn[slash+1:]
	if q := strings.Index(name, "?"); q >= 0 {
		name = name[:q]
	}
	return name
}

func InitDB(appConfig *config.Config) error {
	dbCfg := appConfig.Database
	dsn, err := BuildDSN(dbCfg)
	if err != nil {
		slog.Error("InitDB: could not build DSN", "host", dbCfg.Host, "user", dbCfg.User, "dbname", dbCfg.DBName)
		return err
	}

	safeDSN := dsn
	if dbCfg.Password != "" {
		safeDSN = strings.Replace(dsn, dbCfg.Password, "****", 1)
	}
	slog.Info("Connecting to MySQL", "dsn_for_connection", safeDSN)

	DB, err = sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("open MySQL connection: %w", err)
	}

	DB.SetConnMaxLifetime(time.Minute * 3)
	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(10)

	if err = DB.Ping(); err != nil {
		_ = DB.Close()
		return fmt.Errorf("ping MySQL: %w. DSN: %s", err, safeDSN)
	}
	slog.Info("Connected to MySQL.")

	dbName := dbCfg.DBName
	if dbName == "" {
		dbName = databaseName(dsn)
	}
	if err = RunMigrations(DB, dbName); err != nil {
		_ = DB.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	defaultRoles := []models.Role{
		{Name: models.RoleUser, Description: "Default user role"},
		{Name: models.RoleAdmin, Description: "Administrator with access to user management"},
	}
	for _, r := range defaultRoles {
		if _, errRole := CreateRoleIfNotExists(&r); errRole != nil {
			slog.Warn("Could not create default role", "role_name", r.Name, "error", errRole)
		}
	}

	slog.Info("Database initialized (migrations and seed data applied).")
	return nil
}
