package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, BashCompat, c.ParsingMode)
	assert.Equal(t, Recover, c.ErrorHandling)
	assert.Equal(t, 10, c.MaxErrors)
	assert.True(t, c.EnableFunctions)
	assert.True(t, c.EnableValidation)
}

func TestStrictPOSIXConfigDisablesBashToggles(t *testing.T) {
	c := StrictPOSIXConfig()
	assert.Equal(t, StrictPOSIX, c.ParsingMode)
	assert.Equal(t, Strict, c.ErrorHandling)
	assert.False(t, c.EnableAliases)
	assert.False(t, c.EnableAssociativeArrays)
	assert.False(t, c.EnableProcessSubstitution)
	assert.False(t, c.EnableBraceExpansion)
	assert.False(t, c.EnableHereStrings)
	assert.False(t, c.EnableExtendedGlobbing)
	assert.False(t, c.AllowBashConditionals)
	assert.False(t, c.AllowBashArithmetic)
	assert.False(t, c.AllowBashArrays)

	// Core feature toggles unrelated to Bash-specific syntax stay on.
	assert.True(t, c.EnableFunctions)
	assert.True(t, c.EnableArithmetic)
	assert.True(t, c.EnableArrays)
}

func TestPermissiveConfig(t *testing.T) {
	c := PermissiveConfig()
	assert.Equal(t, Permissive, c.ParsingMode)
	assert.Equal(t, Recover, c.ErrorHandling)
}
