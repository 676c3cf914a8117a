package usecase

import (
	"context"
	"strings"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	apperrors "github.com/allisson/gymbuddy/internal/errors"
)

// chainedCredentialSource consults its sources in order.
type chainedCredentialSource struct {
	sources []CredentialSource
}

// NewChainedCredentialSource returns a source that tries each source in order.
// A not-found answer moves on to the next source; any other error stops the
// chain and is returned. Nil sources are skipped.
func NewChainedCredentialSource(sources ...CredentialSource) CredentialSource {
	chain := make([]CredentialSource, 0, len(sources))
	for _, source := range sources {
		if source != nil {
			chain = append(chain, source)
		}
	}
	return &chainedCredentialSource{sources: chain}
}

// FindByUsername returns the first match by username.
func (c *chainedCredentialSource) FindByUsername(
	ctx context.Context,
	username string,
) (*authDomain.CredentialRecord, error) {
	return c.find(func(source CredentialSource) (*authDomain.CredentialRecord, error) {
		return source.FindByUsername(ctx, username)
	})
}

// FindByEmail returns the first match by email.
func (c *chainedCredentialSource) FindByEmail(
	ctx context.Context,
	email string,
) (*authDomain.CredentialRecord, error) {
	return c.find(func(source CredentialSource) (*authDomain.CredentialRecord, error) {
		return source.FindByEmail(ctx, email)
	})
}

func (c *chainedCredentialSource) find(
	lookup func(CredentialSource) (*authDomain.CredentialRecord, error),
) (*authDomain.CredentialRecord, error) {
	for _, source := range c.sources {
		record, err := lookup(source)
		if err == nil {
			return record, nil
		}
		if !apperrors.Is(err, authDomain.ErrCredentialNotFound) {
			return nil, err
		}
	}
	return nil, authDomain.ErrCredentialNotFound
}

// userStoreCredentialSource adapts the user repository to CredentialSource.
type userStoreCredentialSource struct {
	users UserLookup
}

// NewUserStoreCredentialSource creates the primary credential source.
func NewUserStoreCredentialSource(users UserLookup) CredentialSource {
	return &userStoreCredentialSource{users: users}
}

// FindByUsername looks the user up by username.
func (s *userStoreCredentialSource) FindByUsername(
	ctx context.Context,
	username string,
) (*authDomain.CredentialRecord, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, translateLookupError(err)
	}
	return &authDomain.CredentialRecord{
		UserID:       user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Source:       authDomain.SourceUserStore,
	}, nil
}

// FindByEmail looks the user up by email.
func (s *userStoreCredentialSource) FindByEmail(
	ctx context.Context,
	email string,
) (*authDomain.CredentialRecord, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, translateLookupError(err)
	}
	return &authDomain.CredentialRecord{
		UserID:       user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Source:       authDomain.SourceUserStore,
	}, nil
}

func translateLookupError(err error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return authDomain.ErrCredentialNotFound
	}
	return apperrors.Wrap(err, "failed to look up user")
}

// StaticCredentialSource is an in-memory fallback source configured by the
// operator. It never matches by email.
type StaticCredentialSource struct {
	accounts map[string]string
}

// ParseFallbackAccounts builds a StaticCredentialSource from a semicolon
// separated list of username:hash pairs. The hash may itself contain colons.
// An empty or blank definition yields a source with no accounts.
func ParseFallbackAccounts(definition string) (*StaticCredentialSource, error) {
	accounts := make(map[string]string)

	for entry := range strings.SplitSeq(definition, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		username, hash, ok := strings.Cut(entry, ":")
		username = strings.TrimSpace(username)
		hash = strings.TrimSpace(hash)
		if !ok || username == "" || hash == "" {
			return nil, apperrors.Wrapf(authDomain.ErrInvalidFallbackAccount, "entry %q must be username:hash", username)
		}
		if !strings.HasPrefix(hash, "$") {
			return nil, apperrors.Wrapf(authDomain.ErrInvalidFallbackAccount, "hash for %q is not a PHC or bcrypt string", username)
		}
		if _, exists := accounts[username]; exists {
			return nil, apperrors.Wrapf(authDomain.ErrInvalidFallbackAccount, "duplicate username %q", username)
		}
		accounts[username] = hash
	}

	return &StaticCredentialSource{accounts: accounts}, nil
}

// Len reports the number of configured accounts.
func (s *StaticCredentialSource) Len() int {
	return len(s.accounts)
}

// Has reports whether username is a configured account.
func (s *StaticCredentialSource) Has(username string) bool {
	_, ok := s.accounts[username]
	return ok
}

// FindByUsername returns the configured account for username.
func (s *StaticCredentialSource) FindByUsername(
	_ context.Context,
	username string,
) (*authDomain.CredentialRecord, error) {
	hash, ok := s.accounts[username]
	if !ok {
		return nil, authDomain.ErrCredentialNotFound
	}
	return &authDomain.CredentialRecord{
		Username:     username,
		PasswordHash: hash,
		Source:       authDomain.SourceFallback,
	}, nil
}

// FindByEmail always reports not found.
func (s *StaticCredentialSource) FindByEmail(context.Context, string) (*authDomain.CredentialRecord, error) {
	return nil, authDomain.ErrCredentialNotFound
}
