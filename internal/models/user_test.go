package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserHasRole(t *testing.T) {
	admin := RoleAdmin
	u := &User{Email: "a@example.com", RoleName: &admin}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.True(t, u.HasRole(RoleUser, RoleAdmin))
	assert.False(t, u.HasRole(RoleUser))

	assert.False(t, (&User{}).HasRole(RoleAdmin))
	var nilUser *User
	assert.False(t, nilUser.HasRole(RoleAdmin))
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", (&User{FirstName: "Ada", Email: "ada@example.com"}).DisplayName())
	assert.Equal(t, "ada@example.com", (&User{Email: "ada@example.com"}).DisplayName())
}
