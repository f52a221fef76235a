package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	OpenTestDB(t)
	ClearTestDBTables(t, "users")
	SeedDefaultRolesForTest(t)

	id, err := CreateUser(&models.User{Email: "Admin@Example.com", PasswordHash: "hash", FirstName: "Ada"}, models.RoleAdmin)
	require.NoError(t, err)

	byEmail, err := GetUserByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	require.NotNil(t, byEmail.RoleName)
	assert.Equal(t, models.RoleAdmin, *byEmail.RoleName)

	byID, err := GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	_, err = CreateUser(&models.User{Email: "admin@example.com", PasswordHash: "hash"}, models.RoleUser)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	users, total, err := GetAllUsers(10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, users, 1)
}
