package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	authService "github.com/allisson/gymbuddy/internal/auth/service"
	userUseCase "github.com/allisson/gymbuddy/internal/user/usecase"
)

// RunHashPassword hashes a password with the configured policy. When username
// is set the output is a FALLBACK_ACCOUNTS entry instead of a bare hash.
// An empty password is read from the first line of streams.Reader.
func RunHashPassword(
	hasher authService.PasswordHasher,
	streams IOTuple,
	username, password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := passwordFromInput(streams, password)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(authDomain.PlainPassword(password))
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if format == formatJSON {
		out := map[string]string{"hash": hash}
		if username != "" {
			out["fallback_account"] = username + ":" + hash
		}
		return writeJSON(streams.Writer, out)
	}

	if username != "" {
		_, _ = fmt.Fprintf(streams.Writer, "FALLBACK_ACCOUNTS=\"%s:%s\"\n", username, hash)
		return nil
	}
	_, _ = fmt.Fprintln(streams.Writer, hash)
	return nil
}

// CreateUserOptions carries the create-user flags.
type CreateUserOptions struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Format    string
}

// RunCreateUser registers an account directly against the credential store,
// bypassing the HTTP API. Conflicts and validation failures are returned as is.
func RunCreateUser(
	ctx context.Context,
	users userUseCase.UseCase,
	logger *slog.Logger,
	streams IOTuple,
	opts CreateUserOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}

	password, err := passwordFromInput(streams, opts.Password)
	if err != nil {
		return err
	}

	user, err := users.RegisterUser(ctx, userUseCase.RegisterUserInput{
		Username:  opts.Username,
		Email:     opts.Email,
		Password:  authDomain.PlainPassword(password),
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	if opts.Format == formatJSON {
		return writeJSON(streams.Writer, map[string]string{
			"id":         user.ID.String(),
			"username":   user.Username,
			"email":      user.Email,
			"created_at": user.CreatedAt.Format(time.RFC3339),
		})
	}

	_, _ = fmt.Fprintf(streams.Writer, "Created user %s (%s)\n", user.Username, user.ID)
	return nil
}

// passwordFromInput returns password, or the first line of streams.Reader when it is empty.
func passwordFromInput(streams IOTuple, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if streams.Reader == nil {
		return "", fmt.Errorf("password is required")
	}

	line, err := bufio.NewReader(streams.Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}
