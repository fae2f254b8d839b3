package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	DayOfWeek int    `validate:"gte=0,lte=6"`
	Role      string `validate:"required,oneof=doctor patient"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email:     "doc@clinic.test",
		Password:  "secret123",
		DayOfWeek: 1,
		Role:      "doctor",
	})
	assert.NoError(t, err)
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&sampleRequest{
		Email:     "not-an-email",
		Password:  "abc",
		DayOfWeek: 9,
		Role:      "admin",
	})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Password must be at least 6 characters", formatted["Password"])
	assert.Equal(t, "DayOfWeek must be less than or equal to 6", formatted["DayOfWeek"])
	assert.Equal(t, "Role must be one of: doctor patient", formatted["Role"])
}
