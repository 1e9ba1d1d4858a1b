package model

import (
	"errors"

	"campaign-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeCharacterNotFound = "CHR001"
	ErrCodeInvalidRequest    = "CHR002"
	ErrCodeInvalidData       = "CHR003"
)

// Errors
var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrInvalidData       = errors.New("invalid character data")
)

func NewCharacterNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeCharacterNotFound, "character not found", ErrCharacterNotFound)
}

func NewInvalidRequestError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidRequest, err.Error(), err)
}

func NewInvalidDataError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidData, err.Error(), errors.Join(ErrInvalidData, err))
}
