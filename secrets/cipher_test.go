package secrets

import (
	"testing"

	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) string {
	t.Helper()
	var k fernet.Key
	require.NoError(t, k.Generate())
	return k.Encode()
}

func TestDecryptRoundTrip(t *testing.T) {
	key := newKey(t)

	tok, err := Encrypt(key, "sk-test-123")
	require.NoError(t, err)

	got, err := Decrypt(key, tok)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", got)
}

func TestDecryptWrongKey(t *testing.T) {
	tok, err := Encrypt(newKey(t), "sk-test-123")
	require.NoError(t, err)

	_, err = Decrypt(newKey(t), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecryptMalformedToken(t *testing.T) {
	_, err := Decrypt(newKey(t), "not-a-fernet-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecryptInvalidKey(t *testing.T) {
	_, err := Decrypt("too-short", "whatever")
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Encrypt("too-short", "whatever")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestDecryptEmptyPlaintext(t *testing.T) {
	key := newKey(t)
	tok, err := Encrypt(key, "")
	require.NoError(t, err)

	got, err := Decrypt(key, tok)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
