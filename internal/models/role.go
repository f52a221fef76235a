// internal/models/role.go
package models

import "time"

type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Role names as stored in the roles table.
const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)
