// Package app provides the dependency injection container that assembles the
// account service. Components are created lazily on first access and shared
// afterwards.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authService "github.com/allisson/gymbuddy/internal/auth/service"
	authUseCase "github.com/allisson/gymbuddy/internal/auth/usecase"
	"github.com/allisson/gymbuddy/internal/config"
	cryptoService "github.com/allisson/gymbuddy/internal/crypto/service"
	"github.com/allisson/gymbuddy/internal/database"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/http"
	"github.com/allisson/gymbuddy/internal/metrics"
	outboxUseCase "github.com/allisson/gymbuddy/internal/outbox/usecase"
	userUseCase "github.com/allisson/gymbuddy/internal/user/usecase"
)

// Container holds all application dependencies.
type Container struct {
	config *config.Config

	// ctx bounds background work owned by components; cancelled by Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	kmsService      cryptoService.KMSService
	keyProvider     *cryptoService.KeyProvider
	transportCipher cryptoService.TransportCipher

	// Accounts
	userRepository userUseCase.UserRepository
	userUseCase    userUseCase.UseCase

	// Authentication
	passwordHasher   authService.PasswordHasher
	sessionTokens    authService.SessionTokenService
	fallbackAccounts *authUseCase.StaticCredentialSource
	credentialSource authUseCase.CredentialSource
	authUseCase      authUseCase.AuthUseCase

	// Account events
	outboxRepository outboxUseCase.OutboxEventRepository
	outboxUseCase    outboxUseCase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                   sync.Mutex
	loggerInit           sync.Once
	dbInit               sync.Once
	txManagerInit        sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	kmsServiceInit       sync.Once
	keyProviderInit      sync.Once
	transportCipherInit  sync.Once
	userRepositoryInit   sync.Once
	userUseCaseInit      sync.Once
	passwordHasherInit   sync.Once
	sessionTokensInit    sync.Once
	fallbackAccountsInit sync.Once
	credentialSourceInit sync.Once
	authUseCaseInit      sync.Once
	outboxRepositoryInit sync.Once
	outboxUseCaseInit    sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// lazy runs init exactly once for name and memoizes either its value or its error.
func lazy[T any](c *Container, once *sync.Once, name string, target *T, init func() (T, error)) (T, error) {
	once.Do(func() {
		value, err := init()
		if err != nil {
			c.mu.Lock()
			c.initErrors[name] = err
			c.mu.Unlock()
			return
		}
		*target = value
	})

	c.mu.Lock()
	err, failed := c.initErrors[name]
	c.mu.Unlock()
	if failed {
		var zero T
		return zero, err
	}
	return *target, nil
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the credential store connection pool.
func (c *Container) DB() (*sql.DB, error) {
	return lazy(c, &c.dbInit, "db", &c.db, c.initDB)
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	return lazy(c, &c.txManagerInit, "txManager", &c.txManager, func() (database.TxManager, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		return database.NewTxManager(db), nil
	})
}

// MetricsProvider returns the Prometheus backed meter provider, or nil when
// metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	return lazy(c, &c.metricsProviderInit, "metricsProvider", &c.metricsProvider, func() (*metrics.Provider, error) {
		if !c.config.MetricsEnabled {
			return nil, nil
		}
		provider, err := metrics.NewProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics provider: %w", err)
		}
		return provider, nil
	})
}

// BusinessMetrics returns the operation recorder, a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	return lazy(c, &c.businessMetricsInit, "businessMetrics", &c.businessMetrics, func() (metrics.BusinessMetrics, error) {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		if provider == nil {
			return metrics.NewNoOpBusinessMetrics(), nil
		}
		return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	})
}

// Shutdown stops servers and background work, then releases resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.cancel()

	c.mu.Lock()
	httpServer, metricsServer := c.httpServer, c.metricsServer
	provider, db := c.metricsProvider, c.db
	c.mu.Unlock()

	var errs []error
	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if provider != nil {
		if err := provider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return apperrors.Join(errs...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
