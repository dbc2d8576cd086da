// Package dto provides data transfer objects for the session HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// LoginRequest contains the credentials forwarded to the storefront API.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // forwarded, never stored
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Email,
		),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput maps the request to the use case input.
func (r *LoginRequest) ToInput() *authDomain.LoginInput {
	return &authDomain.LoginInput{Email: r.Email, Password: r.Password}
}

// RegisterRequest contains the parameters for creating a storefront account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // forwarded, never stored
}

// Validate checks if the register request is valid.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NoWhitespace,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(6, 128),
		),
	)
}

// ToInput maps the request to the use case input.
func (r *RegisterRequest) ToInput() *authDomain.RegisterInput {
	return &authDomain.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}
