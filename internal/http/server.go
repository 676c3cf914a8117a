// Package http assembles the gin router, its middleware pipeline and the
// API and metrics servers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/gymbuddy/internal/auth/http"
	authService "github.com/allisson/gymbuddy/internal/auth/service"
	"github.com/allisson/gymbuddy/internal/config"
	cryptoHTTP "github.com/allisson/gymbuddy/internal/crypto/http"
	"github.com/allisson/gymbuddy/internal/metrics"
	userHTTP "github.com/allisson/gymbuddy/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Stage is one named step of the request pipeline.
type Stage struct {
	Name    string
	Handler gin.HandlerFunc
}

// Handlers groups the endpoint handlers mounted under /api.
type Handlers struct {
	Login     *authHTTP.LoginHandler
	Users     *userHTTP.UserHandler
	PublicKey *cryptoHTTP.PublicKeyHandler
}

// Server is the API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	stages []Stage
}

// NewServer creates an API server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Pipeline returns the ordered request stages. Stages run in slice order
// before every route handler:
//
//	recovery -> request_id -> logger -> metrics -> cors -> session
//
// metrics and cors are omitted when disabled. session never rejects a
// request; routes that need an identity add authHTTP.RequireAuthentication.
func (s *Server) Pipeline(
	cfg *config.Config,
	sessionTokens authService.SessionTokenService,
	metricsProvider *metrics.Provider,
) []Stage {
	stages := []Stage{
		{Name: "recovery", Handler: gin.CustomRecovery(s.recoveryHandler)},
		{Name: "request_id", Handler: requestid.New(requestid.WithGenerator(func() string {
			return uuid.Must(uuid.NewV7()).String()
		}))},
		{Name: "logger", Handler: CustomLoggerMiddleware(s.logger)},
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		stages = append(stages, Stage{
			Name:    "metrics",
			Handler: metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace),
		})
	}

	if corsMiddleware := createCORSMiddleware(cfg, s.logger); corsMiddleware != nil {
		stages = append(stages, Stage{Name: "cors", Handler: corsMiddleware})
	}

	return append(stages, Stage{
		Name:    "session",
		Handler: authHTTP.SessionMiddleware(sessionTokens, cfg.SessionTokenHeader, s.logger),
	})
}

// SetupRouter builds the router and attaches it to the server.
//
// ctx bounds background work started by middleware (the login rate limiter
// sweeper) and should be cancelled on shutdown.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	sessionTokens authService.SessionTokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	s.stages = s.Pipeline(cfg, sessionTokens, metricsProvider)
	for _, stage := range s.stages {
		router.Use(stage.Handler)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.GET("/public-key", handlers.PublicKey.GetPublicKeyHandler)

	users := api.Group("/users")
	{
		login := []gin.HandlerFunc{}
		if cfg.RateLimitLoginEnabled {
			login = append(login, authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		users.POST("/login", append(login, handlers.Login.LoginHandler)...)
		users.POST("/register", handlers.Users.RegisterHandler)

		authenticated := users.Group("", authHTTP.RequireAuthentication(s.logger))
		authenticated.GET("/me", handlers.Users.MeHandler)
		authenticated.GET("/listAll", handlers.Users.ListAllHandler)
		authenticated.GET("/find", handlers.Users.FindHandler)
		authenticated.GET("/getUser", handlers.Users.GetUserHandler)
		authenticated.PUT("/update", handlers.Users.UpdateHandler)
		authenticated.PUT("/updatePassword/:userId", handlers.Users.UpdatePasswordHandler)
		authenticated.DELETE("/delete/:userId", handlers.Users.DeleteHandler)
	}

	s.server.Handler = router
}

// StageNames returns the names of the installed pipeline stages in order.
func (s *Server) StageNames() []string {
	names := make([]string, 0, len(s.stages))
	for _, stage := range s.stages {
		names = append(names, stage.Name)
	}
	return names
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) recoveryHandler(c *gin.Context, recovered any) {
	s.logger.Error("panic recovered",
		slog.Any("error", recovered),
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", requestid.Get(c)),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": "An internal error occurred",
	})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the credential store answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	status, code := "ready", http.StatusOK
	if database != "ok" {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": gin.H{"database": database},
	})
}
