// internal/db/roles_db.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"inventory-dashboard/internal/models"
	"strings"
	"time"
)

// CreateRoleIfNotExists returns the id of role, inserting it when missing.
func CreateRoleIfNotExists(role *models.Role) (int64, error) {
	if DB == nil {
		return 0, errNotInitialized
	}
	existingRole, err := GetRoleByName(role.Name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("check existing role '%s': %w", role.Name, err)
	}
	if existingRole != nil {
		slog.Debug("Role already exists", "role_name", role.Name, "role_id", existingRole.ID)
		return existingRole.ID, nil
	}

	query := `INSERT INTO roles (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now()
	res, err := DB.Exec(query, role.Name, role.Description, now, now)
	if err != nil {
		slog.Error("Failed to create role", "role_name", role.Name, "error", err)
		return 0, fmt.Errorf("create role '%s': %w", role.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		slog.Error("Failed to read new role id", "role_name", role.Name, "error", err)
		return 0, fmt.Errorf("read id of role '%s': %w", role.Name, err)
	}
	slog.Info("Role created", "role_id", id, "role_name", role.Name)
	return id, nil
}

// GetRoleByName looks a role up case-insensitively.
func GetRoleByName(name string) (*models.Role, error) {
	if DB == nil {
		return nil, errNotInitialized
	}
	query := `SELECT id, name, description, created_at, updated_at FROM roles WHERE LOWER(name) = LOWER(?)`
	row := DB.QueryRow(query, strings.ToLower(name))
	role := &models.Role{}
	var description sql.NullString
	err := row.Scan(&role.ID, &role.Name, &description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		slog.Error("Failed to look up role by name", "name", name, "error", err)
		return nil, fmt.Errorf("get role '%s': %w", name, err)
	}
	if description.Valid {
		role.Description = description.String
	}
	return role, nil
}
