package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test. t.Setenv with an
// empty value is not enough: godotenv treats a present-but-empty variable as
// set and will not overwrite it.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	orig, had := os.LookupEnv(name)
	require.NoError(t, os.Unsetenv(name))
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(name, orig)
		} else {
			_ = os.Unsetenv(name)
		}
	})
}

func TestLoadBundle(t *testing.T) {
	t.Setenv(KeyEncryptionPassword, "some-key")
	t.Setenv(KeyEncryptedAPIKey, "some-token")

	b, err := LoadBundle()
	require.NoError(t, err)
	assert.Equal(t, "some-key", b.EncryptionKey)
	assert.Equal(t, "some-token", b.EncryptedAPIKey)
}

func TestLoadBundleMissingEncryptionKey(t *testing.T) {
	t.Setenv(KeyEncryptionPassword, "")
	t.Setenv(KeyEncryptedAPIKey, "some-token")

	_, err := LoadBundle()
	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, KeyEncryptionPassword, missing.Name)
}

func TestLoadBundleMissingCredential(t *testing.T) {
	t.Setenv(KeyEncryptionPassword, "some-key")
	t.Setenv(KeyEncryptedAPIKey, "")

	_, err := LoadBundle()
	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, KeyEncryptedAPIKey, missing.Name)
}

func TestAPIKeyPrefersPlaintext(t *testing.T) {
	t.Setenv(KeyPlainAPIKey, "sk-plain")

	b := Bundle{EncryptionKey: "irrelevant", EncryptedAPIKey: "irrelevant"}
	got, err := b.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-plain", got)
}

func TestAPIKeyDecrypts(t *testing.T) {
	t.Setenv(KeyPlainAPIKey, "")
	key := newKey(t)
	tok, err := Encrypt(key, "sk-enc")
	require.NoError(t, err)

	b := Bundle{EncryptionKey: key, EncryptedAPIKey: tok}
	got, err := b.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-enc", got)
}

func TestLoadEnvOverride(t *testing.T) {
	unsetEnv(t, KeyEncryptionPassword)
	unsetEnv(t, KeyEncryptedAPIKey)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENCRYPTION_PASSWORD=from-file\nOPENAI_API_KEY_ENC=token-from-file\n"), 0o600))

	loaded, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "from-file", os.Getenv(KeyEncryptionPassword))
	assert.Equal(t, "token-from-file", os.Getenv(KeyEncryptedAPIKey))
}

func TestLoadEnvViaEnvVar(t *testing.T) {
	unsetEnv(t, KeyEncryptionPassword)
	unsetEnv(t, KeyEncryptedAPIKey)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("ENCRYPTION_PASSWORD=via-env-var\n"), 0o600))
	t.Setenv(EnvPathVar, path)

	loaded, err := LoadEnv("")
	require.NoError(t, err)
	assert.Equal(t, path, loaded)
	assert.Equal(t, "via-env-var", os.Getenv(KeyEncryptionPassword))
}

func TestLoadEnvMissingSource(t *testing.T) {
	unsetEnv(t, EnvPathVar)
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	_, err = LoadEnv("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSource)
	// The diagnostic lists every searched location.
	assert.Contains(t, err.Error(), filepath.Join("config", ".env"))
}

func TestEnvCandidatesOrder(t *testing.T) {
	t.Setenv(EnvPathVar, "/from/env/var/.env")

	got := EnvCandidates("/explicit/.env")
	require.GreaterOrEqual(t, len(got), 4)
	assert.Equal(t, "/explicit/.env", got[0])
	assert.Equal(t, "/from/env/var/.env", got[1])
}
