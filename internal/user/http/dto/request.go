// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	"github.com/allisson/gymbuddy/internal/user/usecase"
	appValidation "github.com/allisson/gymbuddy/internal/validation"
)

// RegisterUserRequest is the body of POST /api/users/register.
type RegisterUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// Validate checks the fields the use case cannot work without. Length and
// format rules are applied by the use case.
func (r *RegisterUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request into use case input.
func (r *RegisterUserRequest) ToInput() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Username:     r.Username,
		Email:        r.Email,
		Password:     authDomain.PlainPassword(r.Password),
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Country:      r.Country,
	}
}

// UpdateUserRequest is the body of PUT /api/users/update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	ID           string  `json:"id"`
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zip_code"`
	Country      *string `json:"country"`
}

// Validate requires a well formed account id.
func (r *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, appValidation.UUID),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request into use case input. Call Validate first.
func (r *UpdateUserRequest) ToInput() usecase.UpdateUserInput {
	return usecase.UpdateUserInput{
		ID:           uuid.MustParse(r.ID),
		Username:     r.Username,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Country:      r.Country,
	}
}

// UpdatePasswordRequest is the body of PUT /api/users/updatePassword/:userId.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate requires both passwords.
func (r *UpdatePasswordRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request into use case input for userID.
func (r *UpdatePasswordRequest) ToInput(userID uuid.UUID) usecase.UpdatePasswordInput {
	return usecase.UpdatePasswordInput{
		UserID:          userID,
		CurrentPassword: authDomain.PlainPassword(r.CurrentPassword),
		NewPassword:     authDomain.PlainPassword(r.NewPassword),
	}
}
