// Package dto provides data transfer objects for the login endpoint.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gymbuddy/internal/auth/domain"
	customValidation "github.com/allisson/gymbuddy/internal/validation"
)

// LoginRequest is the body of POST /api/users/login.
// Password is the base64 encoded RSA ciphertext of the plaintext password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present and the password is base64.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// ToCredential decodes the request into an EncryptedCredential.
// Call Validate first.
func (r *LoginRequest) ToCredential() (*authDomain.EncryptedCredential, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(r.Password)
	if err != nil {
		return nil, err
	}
	return &authDomain.EncryptedCredential{
		UsernameOrEmail:   r.Username,
		EncryptedPassword: ciphertext,
	}, nil
}
