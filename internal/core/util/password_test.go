package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("password123")

	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hashed)

	assert.NoError(t, ComparePassword("password123", hashed))
	assert.Error(t, ComparePassword("wrong-password", hashed))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("password123")
	assert.NoError(t, err)

	second, err := HashPassword("password123")
	assert.NoError(t, err)

	// different salts, both still verify
	assert.NotEqual(t, first, second)
	assert.NoError(t, ComparePassword("password123", first))
	assert.NoError(t, ComparePassword("password123", second))
}
