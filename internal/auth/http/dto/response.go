package dto

import (
	"time"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapLoginOutputToResponse converts a login result into its JSON form.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		Token:     output.Token.Token,
		TokenType: "Bearer",
		ExpiresAt: output.Token.ExpiresAt,
	}
}
