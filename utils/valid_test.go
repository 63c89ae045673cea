package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Admin@FundMe.IO ")
	assert.NoError(t, err)
	assert.Equal(t, "admin@fundme.io", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
	assert.Equal(t, "ab", SanitizeInput("a\x00b"))
}
