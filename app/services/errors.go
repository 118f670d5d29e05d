package services

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
)

// NotFoundError reports a product id with no matching row.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("Product not found with id: %d", e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrProductNotFound }

// AlreadyExistsError reports a name already used by another product,
// compared case-insensitively.
type AlreadyExistsError struct {
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("Product already exists with name: %s", e.Name)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrProductAlreadyExists }
