package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLogin(t *testing.T) {
	assert.NoError(t, ValidateLogin("validlogin1"))
	assert.Error(t, ValidateLogin("short"))
	assert.Error(t, ValidateLogin("with spaces!"))
	assert.Error(t, ValidateLogin("under_score"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Str0ng!pass"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("alllowercase1!"))
	assert.Error(t, ValidatePassword("NoDigits!!"))
	assert.Error(t, ValidatePassword("NoSpecial123"))
}

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
