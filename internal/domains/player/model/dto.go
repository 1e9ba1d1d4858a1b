package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxBioLength = 4096

// RegisterRequest - POST /player/register
type RegisterRequest struct {
	TelegramID int64  `json:"telegram_id"`
	Bio        string `json:"bio"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TelegramID, validation.Required.Error("telegram_id is required"), validation.Min(int64(1))),
		validation.Field(&r.Bio, validation.Length(0, MaxBioLength)),
	)
}
