package app

import (
	"fmt"

	"github.com/allisson/gymbuddy/internal/config"
	outboxRepository "github.com/allisson/gymbuddy/internal/outbox/repository"
	outboxUseCase "github.com/allisson/gymbuddy/internal/outbox/usecase"
)

// OutboxRepository returns the account event store for the configured driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	return lazy(c, &c.outboxRepositoryInit, "outboxRepository", &c.outboxRepository, func() (outboxUseCase.OutboxEventRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
		}

		switch c.config.DBDriver {
		case config.DriverPostgres:
			return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
		case config.DriverMySQL:
			return outboxRepository.NewMySQLOutboxEventRepository(db), nil
		case config.DriverSQLite:
			return outboxRepository.NewSQLiteOutboxEventRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// OutboxUseCase returns the relay that delivers account events to the audit log.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	return lazy(c, &c.outboxUseCaseInit, "outboxUseCase", &c.outboxUseCase, func() (outboxUseCase.UseCase, error) {
		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
		}
		events, err := c.OutboxRepository()
		if err != nil {
			return nil, err
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}

		logger := c.Logger()
		processor := outboxUseCase.NewEventProcessorWithMetrics(outboxUseCase.NewAuditLogProcessor(logger), businessMetrics)

		return outboxUseCase.NewOutboxUseCase(outboxUseCase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		}, txManager, events, processor, logger), nil
	})
}
