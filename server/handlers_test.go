package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("  WWW.Example.IT ")
	require.NoError(t, err)
	assert.Equal(t, "example.it", d)

	d, err = ParseDomain("192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", d)

	_, err = ParseDomain("")
	assert.ErrorIs(t, err, ErrRequired)
	assert.False(t, errors.Is(err, ErrInvalidInput))

	_, err = ParseDomain("exa_mple.com")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, msgDomainInvalid, err.Error())
}

func TestParseEmail(t *testing.T) {
	e, err := ParseEmail(" mario@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mario@example.com", e)

	_, err = ParseEmail("   ")
	assert.ErrorIs(t, err, ErrRequired)

	_, err = ParseEmail("mario@@example.com")
	assert.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgEmailInvalid, verr.Message)
}
