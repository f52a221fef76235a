// internal/models/user.go
package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	RoleID       *int64    `json:"-"`
	RoleName     *string   `json:"role_name,omitempty"`
}

// HasRole reports whether the user carries one of roles.
func (u *User) HasRole(roles ...string) bool {
	if u == nil || u.RoleName == nil {
		return false
	}
	for _, r := range roles {
		if *u.RoleName == r {
			return true
		}
	}
	return false
}

// DisplayName is what the header shows for a signed-in user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// AdminSeed is the first administrator created from the environment at startup.
type AdminSeed struct {
	Email     string `form:"email" validate:"required,email"`
	FirstName string `form:"first_name" validate:"omitempty,alpha_space"`
	Password  string `form:"password" validate:"required,min=8,complex_password"`
}
