package vetting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/francescoattisano63-source/cyber-omega-guardian/vetting"
)

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "example.com", vetting.NormalizeDomain("  https://www.Example.COM/ "))
	assert.Equal(t, "example.com", vetting.NormalizeDomain("http://example.com"))
	assert.Equal(t, "8.8.8.8", vetting.NormalizeDomain("8.8.8.8"))
}

func TestIsValidDomainOrIP(t *testing.T) {
	valid := []string{"example.com", "a.io", "my-site.it", "x1.museum", "8.8.8.8", "999.1.1.1"}
	for _, s := range valid {
		assert.True(t, vetting.IsValidDomainOrIP(s), s)
	}

	invalid := []string{"", "example", "-bad.com", "mail.example.com", "example.c", "exa mple.com", "1.2.3", "example.123"}
	for _, s := range invalid {
		assert.False(t, vetting.IsValidDomainOrIP(s), s)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, vetting.IsValidEmail("mario.rossi@example.it"))
	assert.True(t, vetting.IsValidEmail("a@b.co"))

	for _, s := range []string{"", "mario", "mario@", "mario@example", "ma rio@example.com", "@example.com"} {
		assert.False(t, vetting.IsValidEmail(s), s)
	}
}
