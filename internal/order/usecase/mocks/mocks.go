// Package mocks provides mock implementations for testing the order use cases and their callers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	orderDomain "github.com/allisson/storefront/internal/order/domain"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

// Get mocks the Get method of OrderRepository.
func (m *MockOrderRepository) Get(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderDomain.Order), args.Error(1)
}

// List mocks the List method of OrderRepository.
func (m *MockOrderRepository) List(
	ctx context.Context,
	input *orderDomain.ListOrdersInput,
) ([]*orderDomain.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderDomain.Order), args.Error(1)
}

// UpdateStatus mocks the UpdateStatus method of OrderRepository.
func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context,
	req *orderDomain.UpdateStatusRequest,
) (*orderDomain.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderDomain.Order), args.Error(1)
}

// MockOrderUseCase is a mock implementation of OrderUseCase.
type MockOrderUseCase struct {
	mock.Mock
}

// Get mocks the Get method of OrderUseCase.
func (m *MockOrderUseCase) Get(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderDomain.Order), args.Error(1)
}

// List mocks the List method of OrderUseCase.
func (m *MockOrderUseCase) List(
	ctx context.Context,
	input *orderDomain.ListOrdersInput,
) ([]*orderDomain.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orderDomain.Order), args.Error(1)
}

// AllowedTransitions mocks the AllowedTransitions method of OrderUseCase.
func (m *MockOrderUseCase) AllowedTransitions(
	ctx context.Context,
	orderID string,
) (*orderDomain.Order, []orderDomain.OrderStatus, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*orderDomain.Order), args.Get(1).([]orderDomain.OrderStatus), args.Error(2)
}

// ChangeStatus mocks the ChangeStatus method of OrderUseCase.
func (m *MockOrderUseCase) ChangeStatus(
	ctx context.Context,
	order *orderDomain.Order,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	args := m.Called(ctx, order, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderDomain.Order), args.Error(1)
}

// ChangeStatusByID mocks the ChangeStatusByID method of OrderUseCase.
func (m *MockOrderUseCase) ChangeStatusByID(
	ctx context.Context,
	orderID string,
	to orderDomain.OrderStatus,
) (*orderDomain.Order, error) {
	args := m.Called(ctx, orderID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderDomain.Order), args.Error(1)
}
