// internal/validation/validation.go
package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"inventory-dashboard/internal/auth"
)

var validate *validator.Validate
var alphaSpaceRegex = regexp.MustCompile(`^[\p{L}\s-]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("complex_password", validateComplexPassword)
	validate.RegisterValidation("alpha_space", validateAlphaSpace)

	// errors are keyed by the form field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct returns nil when data is valid, otherwise one message per failed field.
func ValidateStruct(data interface{}) url.Values {
	err := validate.Struct(data)
	if err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) url.Values {
	errorsMap := url.Values{}
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range validationErrs {
			errorsMap.Add(fieldErr.Field(), getErrorMessage(fieldErr))
		}
	} else {
		errorsMap.Add("general", "Validation error: "+err.Error())
	}
	return errorsMap
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long.", err.Param())
		}
		return fmt.Sprintf("Must be at least %s.", err.Param())
	case "complex_password":
		return "Password must contain letters, digits and symbols."
	case "alpha_space":
		return "Only letters, spaces and dashes are allowed."
	default:
		return fmt.Sprintf("Invalid value for %s (tag: %s).", err.Field(), err.Tag())
	}
}

func validateAlphaSpace(fl validator.FieldLevel) bool {
	return alphaSpaceRegex.MatchString(fl.Field().String())
}

func validateComplexPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if password == "" {
		return true
	}
	return auth.IsPasswordComplex(password)
}
