package model

import (
	"errors"

	"campaign-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodePlayerNotFound = "PLR001"
	ErrCodeInvalidRequest = "PLR002"
)

var ErrPlayerNotFound = errors.New("player not found")

func NewPlayerNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodePlayerNotFound, "player not found", ErrPlayerNotFound)
}

func NewInvalidRequestError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidRequest, err.Error(), err)
}
