package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	"github.com/allisson/gymbuddy/internal/errors"
	"github.com/allisson/gymbuddy/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for credential verification.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Authenticate(ctx, credential)

	status := loginStatus(err)
	a.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	a.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return identity, err
}

// Login records metrics for login operations.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	credential *authDomain.EncryptedCredential,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, credential)

	status := loginStatus(err)
	a.metrics.RecordOperation(ctx, "auth", "login", status)
	a.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// loginStatus separates rejected credentials from internal failures.
func loginStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, authDomain.ErrInvalidCredentials):
		return "rejected"
	default:
		return "error"
	}
}
