package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

// MinSessionSecretLength is the smallest accepted HMAC secret, in bytes.
const MinSessionSecretLength = 32

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid,omitempty"`
}

// sessionTokenService implements SessionTokenService with HS256 signed JWTs.
// Tokens carry sub, iat, exp, iss and jti. Nothing is stored server side, so
// every instance sharing the secret and issuer accepts every other's tokens.
type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewSessionTokenService creates a SessionTokenService.
// Returns ErrWeakSessionSecret when secret is shorter than MinSessionSecretLength.
func NewSessionTokenService(secret string, ttl time.Duration, issuer string) (SessionTokenService, error) {
	return newSessionTokenService(secret, ttl, issuer, time.Now)
}

func newSessionTokenService(
	secret string,
	ttl time.Duration,
	issuer string,
	now func() time.Time,
) (*sessionTokenService, error) {
	if len(secret) < MinSessionSecretLength {
		return nil, authDomain.ErrWeakSessionSecret
	}
	if ttl < time.Second {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session token ttl must be at least one second")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(issuer),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(now),
	)

	return &sessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    now,
		parser: parser,
	}, nil
}

// Issue signs a token for subject valid for the configured TTL.
func (s *sessionTokenService) Issue(subject string, userID uuid.UUID) (*authDomain.SessionToken, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session subject is required")
	}

	jti, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token id")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if userID != uuid.Nil {
		claims.UserID = userID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session token")
	}

	return &authDomain.SessionToken{
		Token:     signed,
		Subject:   subject,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate verifies token and returns its claims.
// A token is valid strictly before its expiry instant.
func (s *sessionTokenService) Validate(token string) (*authDomain.SessionClaims, error) {
	if token == "" {
		return nil, authDomain.ErrInvalidSessionToken
	}

	claims := &sessionClaims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrInvalidSessionToken, err.Error())
	}
	if !parsed.Valid || claims.IssuedAt == nil || claims.Subject == "" {
		return nil, authDomain.ErrInvalidSessionToken
	}

	userID := uuid.Nil
	if claims.UserID != "" {
		userID, err = uuid.Parse(claims.UserID)
		if err != nil {
			return nil, apperrors.Wrap(authDomain.ErrInvalidSessionToken, "malformed uid claim")
		}
	}

	return &authDomain.SessionClaims{
		ID:        claims.ID,
		Subject:   claims.Subject,
		UserID:    userID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
