package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authService "github.com/allisson/gymbuddy/internal/auth/service"
	"github.com/allisson/gymbuddy/internal/database"
	"github.com/allisson/gymbuddy/internal/errors"
	outboxDomain "github.com/allisson/gymbuddy/internal/outbox/domain"
	"github.com/allisson/gymbuddy/internal/user/domain"
	appValidation "github.com/allisson/gymbuddy/internal/validation"
)

// Password length bounds for registration and password change.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
	events    AccountEventWriter
	hasher    authService.PasswordHasher
	reserved  ReservedUsernames
}

// Option configures a UserUseCase.
type Option func(*UserUseCase)

// WithReservedUsernames refuses registration of, and renames to, usernames
// held by accounts outside the store.
func WithReservedUsernames(reserved ReservedUsernames) Option {
	return func(uc *UserUseCase) {
		uc.reserved = reserved
	}
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	events AccountEventWriter,
	hasher authService.PasswordHasher,
	opts ...Option,
) UseCase {
	uc := &UserUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		events:    events,
		hasher:    hasher,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("password is required"),
		appValidation.NotBlank,
		validation.Length(MinPasswordLength, MaxPasswordLength).
			Error("password must be between 6 and 128 characters"),
	}
}

func usernameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("username is required"),
		appValidation.NotBlank,
		appValidation.NoWhitespace,
		validation.Length(3, 64).Error("username must be between 3 and 64 characters"),
	}
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("email is required"),
		appValidation.Email,
		validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
	}
}

// validateRegisterUserInput validates the registration input using jellydator/validation
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username, usernameRules()...),
		validation.Field(&input.Email, emailRules()...),
		validation.Field(&input.Password, passwordRules()...),
		validation.Field(&input.Phone, appValidation.Phone),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser hashes the password, stores the user and records a
// user.registered event in the same transaction.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}
	if uc.isReserved(input.Username) {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: strings.TrimSpace(input.AddressLine2),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		ZipCode:      strings.TrimSpace(input.ZipCode),
		Country:      strings.TrimSpace(input.Country),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventUserRegistered, user, now)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns one page of users
func (uc *UserUseCase) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return uc.userRepo.List(ctx, offset, limit)
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// GetUserByEmail retrieves a user by email, ignoring case
func (uc *UserUseCase) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := validation.Validate(email, emailRules()...); err != nil {
		return nil, appValidation.WrapValidationError(err)
	}
	return uc.userRepo.GetByEmail(ctx, email)
}

// GetUserByUsername retrieves a user by exact username
func (uc *UserUseCase) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "username is required")
	}
	return uc.userRepo.GetByUsername(ctx, username)
}

// UpdateUser applies a partial profile update. Username and email changes are
// checked against other accounts first so the caller learns which one clashed.
func (uc *UserUseCase) UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}
	if input.Email != nil {
		normalized := normalizeEmail(*input.Email)
		input.Email = &normalized
	}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username, validation.When(input.Username != nil, usernameRules()...)),
		validation.Field(&input.Email, validation.When(input.Email != nil, emailRules()...)),
		validation.Field(&input.Phone, appValidation.Phone),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	var updated *domain.User
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}

		if input.Username != nil && *input.Username != user.Username {
			if uc.isReserved(*input.Username) {
				return domain.ErrUsernameTaken
			}
			if err := uc.ensureAvailable(ctx, user.ID, uc.userRepo.GetByUsername, *input.Username,
				domain.ErrUsernameTaken); err != nil {
				return err
			}
			user.Username = *input.Username
		}
		if input.Email != nil && *input.Email != user.Email {
			if err := uc.ensureAvailable(ctx, user.ID, uc.userRepo.GetByEmail, *input.Email,
				domain.ErrEmailTaken); err != nil {
				return err
			}
			user.Email = *input.Email
		}

		applyProfile(user, input)

		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdatePassword verifies the current password, stores a new hash and
// records a user.password_changed event.
func (uc *UserUseCase) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.CurrentPassword, validation.Required.Error("current password is required")),
		validation.Field(&input.NewPassword, passwordRules()...),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return err
		}

		if !uc.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
			return domain.ErrInvalidCurrentPassword
		}

		hash, err := uc.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash

		if err := uc.userRepo.Update(ctx, user); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventUserPasswordChanged, user, time.Now().UTC())
	})
}

// DeleteUser removes a user and records a user.deleted event.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := uc.userRepo.Delete(ctx, id); err != nil {
			return err
		}
		return uc.recordEvent(ctx, outboxDomain.EventUserDeleted, user, time.Now().UTC())
	})
}

func (uc *UserUseCase) isReserved(username string) bool {
	return uc.reserved != nil && uc.reserved.Has(username)
}

// ensureAvailable fails with taken when lookup finds an account other than self.
func (uc *UserUseCase) ensureAvailable(
	ctx context.Context,
	self uuid.UUID,
	lookup func(context.Context, string) (*domain.User, error),
	value string,
	taken error,
) error {
	existing, err := lookup(ctx, value)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return taken
	default:
		return nil
	}
}

func (uc *UserUseCase) recordEvent(
	ctx context.Context,
	eventType outboxDomain.EventType,
	user *domain.User,
	occurredAt time.Time,
) error {
	event, err := outboxDomain.NewAccountEvent(eventType, outboxDomain.AccountPayload{
		UserID:     user.ID,
		Username:   user.Username,
		Email:      user.Email,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return err
	}

	if err := uc.events.Create(ctx, event); err != nil {
		return errors.Wrap(err, "failed to record account event")
	}
	return nil
}

func applyProfile(user *domain.User, input UpdateUserInput) {
	fields := []struct {
		value  *string
		target *string
	}{
		{input.FirstName, &user.FirstName},
		{input.LastName, &user.LastName},
		{input.Phone, &user.Phone},
		{input.AddressLine1, &user.AddressLine1},
		{input.AddressLine2, &user.AddressLine2},
		{input.City, &user.City},
		{input.State, &user.State},
		{input.ZipCode, &user.ZipCode},
		{input.Country, &user.Country},
	}
	for _, f := range fields {
		if f.value != nil {
			*f.target = strings.TrimSpace(*f.value)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
