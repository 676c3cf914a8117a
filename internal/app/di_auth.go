package app

import (
	"fmt"
	"log/slog"

	authService "github.com/allisson/gymbuddy/internal/auth/service"
	authUseCase "github.com/allisson/gymbuddy/internal/auth/usecase"
)

// PasswordHasher returns the hasher for PASSWORD_HASH_POLICY.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	return lazy(c, &c.passwordHasherInit, "passwordHasher", &c.passwordHasher, func() (authService.PasswordHasher, error) {
		return authService.NewPasswordHasher(c.config.PasswordHashPolicy)
	})
}

// SessionTokenService returns the session token issuer and validator.
func (c *Container) SessionTokenService() (authService.SessionTokenService, error) {
	return lazy(c, &c.sessionTokensInit, "sessionTokens", &c.sessionTokens, func() (authService.SessionTokenService, error) {
		return authService.NewSessionTokenService(
			c.config.SessionTokenSecret,
			c.config.SessionTokenTTL,
			c.config.SessionTokenIssuer,
		)
	})
}

// FallbackAccounts returns the operator accounts parsed from FALLBACK_ACCOUNTS.
func (c *Container) FallbackAccounts() (*authUseCase.StaticCredentialSource, error) {
	return lazy(c, &c.fallbackAccountsInit, "fallbackAccounts", &c.fallbackAccounts, func() (*authUseCase.StaticCredentialSource, error) {
		fallback, err := c.FallbackAccounts()
		if err != nil {
			return nil, err
		}
		return fallback, nil
	})
}

// CredentialSource returns the lookup chain used at login: the user store
// first, then the configured fallback accounts when there are any.
func (c *Container) CredentialSource() (authUseCase.CredentialSource, error) {
	return lazy(c, &c.credentialSourceInit, "credentialSource", &c.credentialSource, func() (authUseCase.CredentialSource, error) {
		users, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for credential source: %w", err)
		}

		fallback, err := authUseCase.ParseFallbackAccounts(c.config.FallbackAccounts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse FALLBACK_ACCOUNTS: %w", err)
		}

		primary := authUseCase.NewUserStoreCredentialSource(users)
		if fallback.Len() == 0 {
			return authUseCase.NewChainedCredentialSource(primary), nil
		}

		c.Logger().Info("fallback credential source enabled", slog.Int("accounts", fallback.Len()))
		return authUseCase.NewChainedCredentialSource(primary, fallback), nil
	})
}

// AuthUseCase returns the login use case wrapped with metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	return lazy(c, &c.authUseCaseInit, "authUseCase", &c.authUseCase, c.initAuthUseCase)
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	cipher, err := c.TransportCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get transport cipher for auth use case: %w", err)
	}
	credentials, err := c.CredentialSource()
	if err != nil {
		return nil, err
	}
	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for auth use case: %w", err)
	}
	sessionTokens, err := c.SessionTokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get session token service for auth use case: %w", err)
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := authUseCase.NewAuthUseCase(cipher, credentials, hasher, sessionTokens, c.Logger())
	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}
