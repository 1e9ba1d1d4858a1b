package repository

import (
	"context"

	"campaign-backend/internal/domains/player/model"
)

type PlayerRepository interface {
	// GetByID returns model.ErrPlayerNotFound if the player does not exist
	GetByID(ctx context.Context, id int64) (*model.Player, error)

	// GetByTelegramID resolves the oldest player with this telegram id.
	// telegram_id is not unique, so the lowest id wins.
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Player, error)

	// GetOrCreateByTelegramID returns the player for player.TelegramID, inserting
	// player when none exists. Concurrent calls for one telegram id are serialized,
	// so at most one row is created. player is filled from the stored row.
	GetOrCreateByTelegramID(ctx context.Context, player *model.Player) (created bool, err error)
}
