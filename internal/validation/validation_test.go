package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-dashboard/internal/models"
)

func TestValidateLoginForm(t *testing.T) {
	assert.Nil(t, ValidateStruct(models.LoginForm{Email: "a@example.com", Password: "x"}))

	errs := ValidateStruct(models.LoginForm{Email: "nope"})
	require.NotNil(t, errs)
	assert.Equal(t, "Enter a valid email address.", errs.Get("email"))
	assert.Equal(t, "This field is required.", errs.Get("password"))
}

func TestValidateAdminSeed(t *testing.T) {
	assert.Nil(t, ValidateStruct(models.AdminSeed{Email: "admin@example.com", Password: "abcdef1!"}))

	errs := ValidateStruct(models.AdminSeed{Email: "admin@example.com", Password: "abcdefgh"})
	require.NotNil(t, errs)
	assert.Equal(t, "Password must contain letters, digits and symbols.", errs.Get("password"))

	errs = ValidateStruct(models.AdminSeed{Email: "admin@example.com", FirstName: "R2D2", Password: "abcdef1!"})
	require.NotNil(t, errs)
	assert.Equal(t, "Only letters, spaces and dashes are allowed.", errs.Get("first_name"))
}

func TestValidateCarouselJumpForm(t *testing.T) {
	assert.Nil(t, ValidateStruct(models.CarouselJumpForm{Index: 0}))

	errs := ValidateStruct(models.CarouselJumpForm{Index: -1})
	require.NotNil(t, errs)
	assert.Equal(t, "Must be at least 0.", errs.Get("index"))
}
