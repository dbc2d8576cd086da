// Package dto provides data transfer objects for the order HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/storefront/internal/validation"
)

// UpdateOrderStatusRequest contains the target status of a transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks if the update order status request is valid.
func (r *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			customValidation.NotBlank,
			customValidation.OrderStatus,
		),
	)
}
