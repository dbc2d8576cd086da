package app

import (
	"fmt"

	orderHTTP "github.com/allisson/storefront/internal/order/http"
	orderRepository "github.com/allisson/storefront/internal/order/repository"
	orderUseCase "github.com/allisson/storefront/internal/order/usecase"
)

// OrderRepository returns the REST order repository.
func (c *Container) OrderRepository() (orderUseCase.OrderRepository, error) {
	var err error
	c.orderRepositoryInit.Do(func() {
		c.orderRepository, err = c.initOrderRepository()
		if err != nil {
			c.setInitError("orderRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("orderRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.orderRepository, nil
}

// OrderUseCase returns the order use case.
func (c *Container) OrderUseCase() (orderUseCase.OrderUseCase, error) {
	var err error
	c.orderUseCaseInit.Do(func() {
		c.orderUseCase, err = c.initOrderUseCase()
		if err != nil {
			c.setInitError("orderUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("orderUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.orderUseCase, nil
}

// OrderHandler returns the order HTTP handler.
func (c *Container) OrderHandler() (*orderHTTP.OrderHandler, error) {
	var err error
	c.orderHandlerInit.Do(func() {
		c.orderHandler, err = c.initOrderHandler()
		if err != nil {
			c.setInitError("orderHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("orderHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.orderHandler, nil
}

func (c *Container) initOrderRepository() (orderUseCase.OrderRepository, error) {
	apiClient, err := c.APIClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get api client for order repository: %w", err)
	}
	return orderRepository.NewRESTOrderRepository(apiClient, c.Logger()), nil
}

func (c *Container) initOrderUseCase() (orderUseCase.OrderUseCase, error) {
	repo, err := c.OrderRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get order repository for order use case: %w", err)
	}

	baseUseCase := orderUseCase.NewOrderUseCase(repo, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for order use case: %w", err)
		}
		return orderUseCase.NewOrderUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initOrderHandler() (*orderHTTP.OrderHandler, error) {
	useCase, err := c.OrderUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get order use case for order handler: %w", err)
	}
	return orderHTTP.NewOrderHandler(useCase, c.Logger()), nil
}
