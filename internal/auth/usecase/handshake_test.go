package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	authService "github.com/allisson/gymbuddy/internal/auth/service"
	cryptoDomain "github.com/allisson/gymbuddy/internal/crypto/domain"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
)

// TestLoginHandshake runs the real cipher, hasher and token service together.
func TestLoginHandshake(t *testing.T) {
	ctx := context.Background()

	serverKeys, err := cryptoDomain.GenerateKeyPair(cryptoDomain.DefaultKeyBits)
	require.NoError(t, err)
	provider, err := cryptoService.NewKeyProvider(serverKeys)
	require.NoError(t, err)
	cipher, err := cryptoService.NewTransportCipher(provider, cryptoDomain.PaddingOAEP)
	require.NoError(t, err)

	hasher, err := authService.NewPasswordHasher(authService.PolicyInteractive)
	require.NoError(t, err)
	aliceHash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	fallback, err := ParseFallbackAccounts("alice:" + aliceHash)
	require.NoError(t, err)

	tokens, err := authService.NewSessionTokenService(strings.Repeat("k", 32), 4*time.Hour, "gymbuddy")
	require.NoError(t, err)

	useCase := NewAuthUseCase(cipher, NewChainedCredentialSource(fallback), hasher, tokens, discardLogger())

	encrypt := func(t *testing.T, password string, keys *cryptoDomain.KeyPair) []byte {
		t.Helper()
		ciphertext, err := cryptoService.EncryptWithPublicKey([]byte(password), keys.PublicKey, cryptoDomain.PaddingOAEP)
		require.NoError(t, err)
		return ciphertext
	}

	t.Run("Success", func(t *testing.T) {
		output, err := useCase.Login(ctx, &authDomain.EncryptedCredential{
			UsernameOrEmail:   "alice",
			EncryptedPassword: encrypt(t, "secret123", serverKeys),
		})
		require.NoError(t, err)

		claims, err := tokens.Validate(output.Token.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.Equal(t, authDomain.SourceFallback, output.Identity.Source)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		_, err := useCase.Login(ctx, &authDomain.EncryptedCredential{
			UsernameOrEmail:   "alice",
			EncryptedPassword: encrypt(t, "secret124", serverKeys),
		})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("Error_EncryptedForAnotherKey", func(t *testing.T) {
		otherKeys, err := cryptoDomain.GenerateKeyPair(cryptoDomain.DefaultKeyBits)
		require.NoError(t, err)

		_, err = useCase.Login(ctx, &authDomain.EncryptedCredential{
			UsernameOrEmail:   "alice",
			EncryptedPassword: encrypt(t, "secret123", otherKeys),
		})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})
}
