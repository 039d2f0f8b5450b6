package utils

import (
	"math/rand"
	"path/filepath"
	"regexp"
	"strings"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ123456789")

func GenerateRandomStringWithLength(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// TrimOrNil trims the input and returns nil when nothing is left, so a blank
// submission clears any stale prior value instead of keeping it.
func TrimOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SafeFileName strips path components and replaces characters that are not
// safe inside an object-storage key.
func SafeFileName(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	safe := unsafeFileChars.ReplaceAllString(base, "_")
	if safe == "" || safe == "." || safe == ".." {
		safe = "file_" + GenerateRandomStringWithLength(8)
	}
	return safe
}
