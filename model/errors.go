package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrConstraint        = errors.New("constraint violation")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrEmptyCart       = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrClientRequired  = fmt.Errorf("%w: select a client or enter a new client name", ErrValidation)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	ErrNegativePrice   = fmt.Errorf("%w: price must be >= 0", ErrValidation)
	ErrNegativeStock   = fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	ErrCategoryInUse   = fmt.Errorf("%w: category has products", ErrConflict)
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError is returned when a cart quantity would exceed current stock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, only %d available", e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
