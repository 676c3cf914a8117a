package app

import (
	"fmt"

	"github.com/allisson/gymbuddy/internal/config"
	userRepository "github.com/allisson/gymbuddy/internal/user/repository"
	userUseCase "github.com/allisson/gymbuddy/internal/user/usecase"
)

// UserRepository returns the credential store for the configured driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	return lazy(c, &c.userRepositoryInit, "userRepository", &c.userRepository, func() (userUseCase.UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}

		switch c.config.DBDriver {
		case config.DriverPostgres:
			return userRepository.NewPostgreSQLUserRepository(db), nil
		case config.DriverMySQL:
			return userRepository.NewMySQLUserRepository(db), nil
		case config.DriverSQLite:
			return userRepository.NewSQLiteUserRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// UserUseCase returns the account use case wrapped with metrics.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	return lazy(c, &c.userUseCaseInit, "userUseCase", &c.userUseCase, c.initUserUseCase)
}

func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}
	users, err := c.UserRepository()
	if err != nil {
		return nil, err
	}
	events, err := c.OutboxRepository()
	if err != nil {
		return nil, err
	}
	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get password hasher for user use case: %w", err)
	}
	fallback, err := c.FallbackAccounts()
	if err != nil {
		return nil, err
	}
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := userUseCase.NewUserUseCase(txManager, users, events, hasher,
		userUseCase.WithReservedUsernames(fallback))
	return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}
