package order

import "errors"

var (
	ErrNotFound        = errors.New("order not found")
	ErrForbidden       = errors.New("not allowed to view this order")
	ErrNoLines         = errors.New("order must contain at least one line")
	ErrMissingField    = errors.New("required field is missing")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)
