package product

import "errors"

var (
	ErrNotFound        = errors.New("product not found")
	ErrMissingField    = errors.New("required field is missing")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)
