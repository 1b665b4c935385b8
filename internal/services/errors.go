package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrVariantNotFound = errors.New("variant not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrOutOfStock      = errors.New("variant is out of stock")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOrderSubmission = errors.New("order submission failed")
	ErrInvalidCheckout = errors.New("checkout form is invalid")
)

// ValidationError reports every invalid field of a form at once.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidCheckout
}
