// cmd/server/seed.go
package main

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"inventory-dashboard/internal/auth"
	"inventory-dashboard/internal/db"
	"inventory-dashboard/internal/models"
	"inventory-dashboard/internal/validation"
)

// seedFirstAdmin makes sure FIRST_ADMIN_EMAIL exists and holds the admin
// role. The account is created only when FIRST_ADMIN_PASSWORD is set.
func seedFirstAdmin() {
	firstAdminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	if firstAdminEmail == "" {
		slog.Info("FIRST_ADMIN_EMAIL is not set, no administrator is seeded")
		return
	}

	adminUser, err := db.GetUserByEmail(firstAdminEmail)
	switch {
	case err == nil && adminUser != nil:
		if adminUser.HasRole(models.RoleAdmin) {
			slog.Info("User is already an administrator", "email", firstAdminEmail)
			return
		}
		adminRole, errRole := db.GetRoleByName(models.RoleAdmin)
		if errRole != nil {
			slog.Error("Admin role not found", "error", errRole)
			return
		}
		if errSet := db.SetUserRole(adminUser.ID, adminRole.ID); errSet != nil {
			slog.Error("Could not grant administrator role", "email", firstAdminEmail, "error", errSet)
			return
		}
		slog.Info("Administrator role granted", "email", firstAdminEmail)
	case errors.Is(err, sql.ErrNoRows):
		createFirstAdmin(firstAdminEmail)
	default:
		slog.Warn("Could not look up the first administrator", "email", firstAdminEmail, "error", err)
	}
}

func createFirstAdmin(email string) {
	seed := models.AdminSeed{
		Email:     email,
		FirstName: auth.SanitizeName(os.Getenv("FIRST_ADMIN_NAME")),
		Password:  os.Getenv("FIRST_ADMIN_PASSWORD"),
	}
	if errs := validation.ValidateStruct(seed); len(errs) > 0 {
		slog.Error("FIRST_ADMIN_* variables are invalid, administrator not created", "errors", errs)
		return
	}
	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		slog.Error("Could not hash administrator password", "error", err)
		return
	}
	user := &models.User{Email: seed.Email, PasswordHash: hash, FirstName: seed.FirstName}
	if _, err := db.CreateUser(user, models.RoleAdmin); err != nil {
		slog.Error("Could not create the first administrator", "email", email, "error", err)
	}
}
