package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/gymbuddy/internal/app"
	"github.com/allisson/gymbuddy/internal/config"
	apphttp "github.com/allisson/gymbuddy/internal/http"
	outboxUseCase "github.com/allisson/gymbuddy/internal/outbox/usecase"
)

// RunServer starts the API server, the optional metrics server and the
// optional account event relay, then blocks until SIGINT/SIGTERM or the first
// fatal error. Servers are shut down within DBConnMaxLifetime.
//
// Configuration is validated and the transport key pair is loaded before any
// listener opens, so a missing key or session secret aborts start-up.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	components, err := loadServerComponents(cfg, container)
	if err != nil {
		return err
	}
	server, metricsServer, outbox := components.server, components.metricsServer, components.outbox

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.Start(groupCtx); err != nil {
			return fmt.Errorf("api server error: %w", err)
		}
		return nil
	})

	if metricsServer != nil {
		group.Go(func() error {
			if err := metricsServer.Start(groupCtx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	if outbox != nil {
		group.Go(func() error {
			if err := outbox.Start(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay error: %w", err)
			}
			return nil
		})
	}

	// Servers only return on failure, so groupCtx ends on a signal or the first error.
	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		var shutdownErrors []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("api server shutdown: %w", err))
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return group.Wait()
}

// serverComponents holds everything RunServer starts.
type serverComponents struct {
	server        *apphttp.Server
	metricsServer *apphttp.MetricsServer
	outbox        outboxUseCase.UseCase
}

// loadServerComponents resolves every long-running component before any of
// them starts. metricsServer and outbox are nil when disabled.
func loadServerComponents(cfg *config.Config, container *app.Container) (*serverComponents, error) {
	server, err := container.HTTPServer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	components := &serverComponents{server: server, metricsServer: metricsServer}
	if cfg.OutboxEnabled {
		components.outbox, err = container.OutboxUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize outbox relay: %w", err)
		}
	}
	return components, nil
}
