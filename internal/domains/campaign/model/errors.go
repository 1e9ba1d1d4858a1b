package model

import (
	"errors"

	"campaign-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeCampaignNotFound   = "CMP001"
	ErrCodeMembershipNotFound = "CMP002"
	ErrCodeNotOwner           = "CMP003"
	ErrCodeInvalidRequest     = "CMP004"
	ErrCodeInvalidStatus      = "CMP005"
	ErrCodeInvalidIcon        = "CMP006"
)

// Errors
var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNotOwner           = errors.New("caller is not the campaign owner")
	ErrInvalidRole        = errors.New("invalid role")
	ErrStatusRequired     = errors.New("status is required")
	ErrInvalidIcon        = errors.New("invalid icon")
)

// NewCampaignNotFoundError is also returned for private campaigns the caller may not see
func NewCampaignNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeCampaignNotFound, "requested campaign does not exist", ErrCampaignNotFound)
}

func NewMembershipNotFoundError() *apperror.Error {
	return apperror.NotFound(ErrCodeMembershipNotFound, "user is not a member of this campaign", ErrMembershipNotFound)
}

func NewNotOwnerError(message string) *apperror.Error {
	return apperror.Forbidden(ErrCodeNotOwner, message, ErrNotOwner)
}

func NewInvalidRequestError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidRequest, err.Error(), err)
}

func NewStatusRequiredError() *apperror.Error {
	return apperror.Validation(ErrCodeInvalidStatus, "status is required", ErrStatusRequired)
}

func NewInvalidStatusError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidStatus, "invalid status value", err)
}

func NewInvalidIconError(err error) *apperror.Error {
	return apperror.Validation(ErrCodeInvalidIcon, "icon is not a valid base64-encoded image", errors.Join(ErrInvalidIcon, err))
}
