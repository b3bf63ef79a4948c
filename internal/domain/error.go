package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmptyItemName      = errors.New("item name is empty")
	ErrInvalidExecContext = errors.New("invalid executor context")
)
