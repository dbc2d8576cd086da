package domain

import (
	apperrors "github.com/allisson/storefront/internal/errors"
)

// ErrUnsupportedDriver indicates an unknown SESSION_STORE_DRIVER value.
var ErrUnsupportedDriver = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported session store driver")

// Batch is a set of writes applied atomically by a KV backend: either every put and
// delete becomes visible or none does.
type Batch struct {
	Puts    map[string][]byte
	Deletes []string
}

// IsEmpty reports whether the batch has nothing to apply.
func (b Batch) IsEmpty() bool {
	return len(b.Puts) == 0 && len(b.Deletes) == 0
}
