package domain

import (
	"bytes"
	"encoding/json"

	validation "github.com/jellydator/validation"

	sessionDomain "github.com/allisson/storefront/internal/session/domain"
	customValidation "github.com/allisson/storefront/internal/validation"
)

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login input.
func (l *LoginInput) Validate() error {
	err := validation.ValidateStruct(l,
		validation.Field(&l.Email, validation.Required, customValidation.Email),
		validation.Field(&l.Password, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration input.
func (r *RegisterInput) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
	return customValidation.WrapValidationError(err)
}

// RefreshInput is the body of POST /auth/refresh.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the credential pair and profile returned by login and register.
type AuthResult struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user,omitempty"`
}

// Session converts the result into a session value.
func (a *AuthResult) Session() *sessionDomain.Session {
	return &sessionDomain.Session{
		AccessToken:  a.AccessToken,
		RefreshToken: a.RefreshToken,
		User:         a.User,
	}
}

// Validate requires both credentials.
func (a *AuthResult) Validate() error {
	if a.AccessToken == "" {
		return ErrMissingAccessToken
	}
	if a.RefreshToken == "" {
		return sessionDomain.ErrInvalidSession
	}
	return nil
}

// UnmarshalJSON reads each field from the "data" envelope first and falls back to the
// top level when the envelope leaves it empty or is not an object.
func (a *AuthResult) UnmarshalJSON(b []byte) error {
	type fields AuthResult
	var top struct {
		fields
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &top); err != nil {
		return err
	}

	var data fields
	if isObject(top.Data) {
		if err := json.Unmarshal(top.Data, &data); err != nil {
			return err
		}
	}

	*a = AuthResult{
		AccessToken:  firstNonEmpty(data.AccessToken, top.AccessToken),
		RefreshToken: firstNonEmpty(data.RefreshToken, top.RefreshToken),
		User:         top.User,
	}
	if !isNull(data.User) {
		a.User = data.User
	}
	if isNull(a.User) {
		a.User = nil
	}
	return nil
}

// RefreshResult is the answer of POST /auth/refresh.
type RefreshResult struct {
	AccessToken string `json:"accessToken"`
}

// UnmarshalJSON accepts data.accessToken and falls back to a top-level accessToken.
func (r *RefreshResult) UnmarshalJSON(b []byte) error {
	var top struct {
		AccessToken string          `json:"accessToken"`
		Data        json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &top); err != nil {
		return err
	}

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	if isObject(top.Data) {
		if err := json.Unmarshal(top.Data, &data); err != nil {
			return err
		}
	}

	r.AccessToken = firstNonEmpty(data.AccessToken, top.AccessToken)
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
