package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimOrNil(t *testing.T) {
	got := TrimOrNil("  hello  ")
	require.NotNil(t, got)
	assert.Equal(t, "hello", *got)

	assert.Nil(t, TrimOrNil(""))
	assert.Nil(t, TrimOrNil("   "))
	assert.Nil(t, TrimOrNil("\t\n"))
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "report.pdf", SafeFileName("report.pdf"))
	assert.Equal(t, "passwd", SafeFileName("../../etc/passwd"))
	assert.Equal(t, "summer_campaign_2026.png", SafeFileName("summer campaign 2026.png"))

	generated := SafeFileName("..")
	assert.NotEqual(t, "..", generated)
	assert.NotEmpty(t, generated)
}

func TestGenerateRandomStringWithLength(t *testing.T) {
	assert.Len(t, GenerateRandomStringWithLength(6), 6)
	assert.Len(t, GenerateRandomStringWithLength(32), 32)
}

func TestValidateEmail(t *testing.T) {
	ok, err := ValidateEmail("deniz@alibey.com")
	assert.True(t, ok)
	assert.NoError(t, err)

	ok, err = ValidateEmail("not-an-email")
	assert.False(t, ok)
	assert.Error(t, err)
}
