// internal/db/users.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"inventory-dashboard/internal/models"

	"github.com/go-sql-driver/mysql"
)

var ErrDuplicateEmail = errors.New("a user with this email already exists")

func CreateUser(user *models.User, roleName string) (int64, error) {
	if DB == nil {
		return 0, errNotInitialized
	}

	role, err := GetRoleByName(roleName)
	if err != nil {
		slog.Error("Could not load role for new user", "roleName", roleName, "error", err)
		return 0, fmt.Errorf("role '%s' not found: %w", roleName, err)
	}

	query := `INSERT INTO users (email, password_hash, first_name, last_name, role_id, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	res, err := DB.Exec(query,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		role.ID,
		now,
		now,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return 0, ErrDuplicateEmail
		}
		slog.Error("Failed to create user", "error", err, "email", user.Email)
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read new user id: %w", err)
	}
	slog.Info("User created", "user_id", id, "email", user.Email, "role", role.Name)
	return id, nil
}

func GetUserByEmail(email string) (*models.User, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	row := DB.QueryRow(getFullUserQuery()+" WHERE LOWER(u.email) = LOWER(?)", strings.ToLower(email))
	return scanFullUser(row)
}

func GetUserByID(id int64) (*models.User, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	row := DB.QueryRow(getFullUserQuery()+" WHERE u.id = ?", id)
	return scanFullUser(row)
}

func SetUserRole(userID int64, roleID int64) error {
	if DB == nil {
		return errNotInitialized
	}
	_, err := DB.Exec(`UPDATE users SET role_id = ?, updated_at = ? WHERE id = ?`, roleID, time.Now(), userID)
	if err != nil {
		slog.Error("Failed to set user role", "userID", userID, "roleID", roleID, "error", err)
		return fmt.Errorf("set role for user %d: %w", userID, err)
	}
	return nil
}

func GetAllUsers(limit, offset int) ([]*models.User, int, error) {
	if DB == nil {
		return nil, 0, errNotInitialized
	}

	var totalUsers int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&totalUsers); err != nil {
		slog.Error("Failed to count users", "error", err)
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := DB.Query(getFullUserQuery()+" ORDER BY u.created_at DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, errScan := scanFullUser(rows)
		if errScan != nil {
			slog.Error("Failed to scan user row", "error", errScan)
			continue
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}
	return users, totalUsers, nil
}

func getFullUserQuery() string {
	return `SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name,
                   u.created_at, u.updated_at, u.role_id, r.name as role_name
            FROM users u
            LEFT JOIN roles r ON u.role_id = r.id`
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanFullUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var firstName, lastName sql.NullString
	var roleID sql.NullInt64
	var roleName sql.NullString

	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &firstName, &lastName,
		&user.CreatedAt, &user.UpdatedAt, &roleID, &roleName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	if roleID.Valid {
		user.RoleID = &roleID.Int64
	}
	if roleName.Valid {
		user.RoleName = &roleName.String
	}
	return user, nil
}
