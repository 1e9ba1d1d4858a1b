package service

import (
	"context"

	"campaign-backend/internal/domains/player/model"
)

type ServiceInterface interface {
	// Register returns the existing player for the telegram id or creates one.
	// created reports whether a new row was inserted.
	Register(ctx context.Context, req model.RegisterRequest) (resp *model.PlayerResponse, created bool, err error)

	// GetByTelegramID returns NotFound if no player has this telegram id
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.PlayerResponse, error)
}
