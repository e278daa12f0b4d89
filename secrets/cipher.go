package secrets

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/fernet/fernet-go"
)

var (
	// ErrInvalidKey means the encryption key is not a well-formed Fernet key.
	ErrInvalidKey = errors.New("encryption key is not a valid fernet key")
	// ErrInvalidToken means the ciphertext is malformed, was produced under a
	// different key, or has been tampered with. Fernet cannot tell these
	// apart: the HMAC check fails identically for all of them.
	ErrInvalidToken = errors.New("credential decryption failed")
)

// Decrypt recovers the plaintext credential from a Fernet token. Decryption
// is atomic: either the integrity check passes and the full plaintext is
// returned, or a classified error is. Both error classes are terminal; a
// mismatched key/token pair never succeeds on retry.
func Decrypt(key, ciphertext string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{k})
	if msg == nil {
		return "", ErrInvalidToken
	}
	if !utf8.Valid(msg) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", ErrInvalidToken)
	}
	return string(msg), nil
}

// Encrypt is the inverse of Decrypt. The CLI never encrypts; this exists so
// operators can seal a fresh credential (and so the round trip is testable).
func Encrypt(key, plaintext string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	tok, err := fernet.EncryptAndSign([]byte(plaintext), k)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}
