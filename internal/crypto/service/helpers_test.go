package service

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
)

var (
	testKeyPairOnce sync.Once
	testKeyPair     *cryptoDomain.KeyPair
)

// sharedKeyPair returns a 2048-bit key pair generated once per test binary.
func sharedKeyPair(t *testing.T) *cryptoDomain.KeyPair {
	t.Helper()
	testKeyPairOnce.Do(func() {
		keyPair, err := cryptoDomain.GenerateKeyPair(cryptoDomain.DefaultKeyBits)
		if err != nil {
			panic(err)
		}
		testKeyPair = keyPair
	})
	return testKeyPair
}

func newTestProvider(t *testing.T) *KeyProvider {
	t.Helper()
	provider, err := NewKeyProvider(sharedKeyPair(t))
	require.NoError(t, err)
	return provider
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func generateOtherKey(t *testing.T, bits int) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)
	return key
}
