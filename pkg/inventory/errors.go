package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyProductID is returned when a product is registered without an id.
	ErrEmptyProductID = errors.New("product id cannot be empty")

	// ErrNegativePrice is returned when a product is registered with a negative price.
	ErrNegativePrice = errors.New("product price cannot be negative")

	// ErrNegativeStock is returned when a product is registered with a negative stock count.
	ErrNegativeStock = errors.New("product stock cannot be negative")

	// ErrInvalidCatalog wraps YAML catalog parsing and validation failures.
	ErrInvalidCatalog = errors.New("invalid product catalog")

	// ErrEmptyCatalog is returned when a catalog defines no products.
	ErrEmptyCatalog = errors.New("catalog defines no products")
)

// UnknownProductError indicates a lookup for a product id that is not registered.
type UnknownProductError struct {
	ID string
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q", e.ID)
}

func NewUnknownProductError(id string) *UnknownProductError {
	return &UnknownProductError{ID: id}
}

// OutOfStockError indicates a decrement was attempted on a product with zero stock.
type OutOfStockError struct {
	ID string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %q is out of stock", e.ID)
}

func NewOutOfStockError(id string) *OutOfStockError {
	return &OutOfStockError{ID: id}
}

// DuplicateProductError indicates two products were registered under the same id.
type DuplicateProductError struct {
	ID string
}

func (e *DuplicateProductError) Error() string {
	return fmt.Sprintf("duplicate product %q", e.ID)
}

func NewDuplicateProductError(id string) *DuplicateProductError {
	return &DuplicateProductError{ID: id}
}

func IsUnknownProductError(err error) bool {
	var e *UnknownProductError
	return errors.As(err, &e)
}

func IsOutOfStockError(err error) bool {
	var e *OutOfStockError
	return errors.As(err, &e)
}

func IsDuplicateProductError(err error) bool {
	var e *DuplicateProductError
	return errors.As(err, &e)
}
