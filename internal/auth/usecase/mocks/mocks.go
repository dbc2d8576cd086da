// Package mocks provides mock implementations for testing the auth use cases and their callers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/storefront/internal/auth/domain"
	sessionDomain "github.com/allisson/storefront/internal/session/domain"
)

// MockAuthUseCase is a mock implementation of AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// Login mocks the Login method of AuthUseCase.
func (m *MockAuthUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*sessionDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.Session), args.Error(1)
}

// Register mocks the Register method of AuthUseCase.
func (m *MockAuthUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*sessionDomain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.Session), args.Error(1)
}

// Logout mocks the Logout method of AuthUseCase.
func (m *MockAuthUseCase) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Current mocks the Current method of AuthUseCase.
func (m *MockAuthUseCase) Current(ctx context.Context) (*sessionDomain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sessionDomain.Session), args.Error(1)
}

// MockAPIClient is a mock implementation of APIClient.
type MockAPIClient struct {
	mock.Mock
}

// Post mocks the Post method of APIClient. A non-nil first return value is copied into out.
func (m *MockAPIClient) Post(ctx context.Context, path string, in, out any) error {
	args := m.Called(ctx, path, in, out)
	if result, ok := args.Get(0).(*authDomain.AuthResult); ok && result != nil {
		if target, ok := out.(*authDomain.AuthResult); ok {
			*target = *result
		}
	}
	return args.Error(1)
}
