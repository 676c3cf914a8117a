package app

import (
	"fmt"

	authHTTP "github.com/allisson/gymbuddy/internal/auth/http"
	cryptoHTTP "github.com/allisson/gymbuddy/internal/crypto/http"
	"github.com/allisson/gymbuddy/internal/http"
	userHTTP "github.com/allisson/gymbuddy/internal/user/http"
)

// HTTPServer returns the API server with its router already set up.
func (c *Container) HTTPServer() (*http.Server, error) {
	return lazy(c, &c.httpServerInit, "httpServer", &c.httpServer, c.initHTTPServer)
}

// MetricsServer returns the Prometheus scrape server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	return lazy(c, &c.metricsServerInit, "metricsServer", &c.metricsServer, func() (*http.MetricsServer, error) {
		provider, err := c.MetricsProvider()
		if err != nil || provider == nil {
			return nil, err
		}
		return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
	})
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}
	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, err
	}
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, err
	}
	keyProvider, err := c.KeyProvider()
	if err != nil {
		return nil, err
	}
	sessionTokens, err := c.SessionTokenService()
	if err != nil {
		return nil, err
	}
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.ctx, c.config, http.Handlers{
		Login:     authHTTP.NewLoginHandler(authUseCase, logger),
		Users:     userHTTP.NewUserHandler(userUseCase, logger),
		PublicKey: cryptoHTTP.NewPublicKeyHandler(keyProvider, logger),
	}, sessionTokens, provider)

	return server, nil
}
