package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_SealOpen(t *testing.T) {
	c, err := NewCipher("segredo")
	require.NoError(t, err)

	sealed, err := c.Seal("ya29.token")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "ya29")

	again, err := c.Seal("ya29.token")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce deve variar")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", plain)
}

func TestCipher_Empty(t *testing.T) {
	c, err := NewCipher("segredo")
	require.NoError(t, err)

	sealed, err := c.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	plain, err := c.Open("")
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestCipher_WrongKey(t *testing.T) {
	a, _ := NewCipher("a")
	b, _ := NewCipher("b")

	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = a.Open("%%%")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestNewCipher_MissingKey(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrMissingKey)
}
