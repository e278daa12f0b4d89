package secrets

import (
	"fmt"
	"os"
)

// Environment entry names for the credential bundle.
const (
	KeyEncryptionPassword = "ENCRYPTION_PASSWORD"
	KeyEncryptedAPIKey    = "OPENAI_API_KEY_ENC"
	KeyPlainAPIKey        = "OPENAI_API_KEY"
)

// Bundle holds the two opaque strings needed to recover the API credential.
// Both values stay encrypted/encoded at rest; nothing in the bundle is a
// usable secret on its own.
type Bundle struct {
	EncryptionKey   string
	EncryptedAPIKey string
}

// MissingKeyError reports an absent entry in the configuration source.
type MissingKeyError struct {
	Name string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing required env var: %s", e.Name)
}

// LoadBundle reads the credential bundle from the process environment.
// Call LoadEnv first so the .env contents are visible here.
func LoadBundle() (Bundle, error) {
	key := os.Getenv(KeyEncryptionPassword)
	if key == "" {
		return Bundle{}, &MissingKeyError{Name: KeyEncryptionPassword}
	}
	enc := os.Getenv(KeyEncryptedAPIKey)
	if enc == "" {
		return Bundle{}, &MissingKeyError{Name: KeyEncryptedAPIKey}
	}
	return Bundle{EncryptionKey: key, EncryptedAPIKey: enc}, nil
}

// APIKey resolves the plaintext credential for one request. A plaintext
// OPENAI_API_KEY in the environment wins; otherwise the encrypted value from
// the bundle is decrypted. The caller owns the returned string and must not
// store it beyond the request it authenticates.
func (b Bundle) APIKey() (string, error) {
	if v := os.Getenv(KeyPlainAPIKey); v != "" {
		return v, nil
	}
	return Decrypt(b.EncryptionKey, b.EncryptedAPIKey)
}
