package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrDuplicate           = errors.New("duplicate record")
	ErrValidation          = errors.New("validation failed")
	ErrExceedsRemaining    = errors.New("amount exceeds remaining amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
