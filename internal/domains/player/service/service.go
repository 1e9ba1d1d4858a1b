package service

import (
	"context"
	"errors"

	"campaign-backend/internal/domains/player/model"
	"campaign-backend/internal/domains/player/repository"
	"campaign-backend/pkg/logger"
)

type playerService struct {
	playerRepo repository.PlayerRepository
}

func NewPlayerService(playerRepo repository.PlayerRepository) ServiceInterface {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) Register(ctx context.Context, req model.RegisterRequest) (*model.PlayerResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, model.NewInvalidRequestError(err)
	}

	player := &model.Player{
		TelegramID: req.TelegramID,
		Bio:        req.Bio,
	}
	created, err := s.playerRepo.GetOrCreateByTelegramID(ctx, player)
	if err != nil {
		return nil, false, err
	}
	if !created {
		return player.ToResponse(), false, nil
	}

	logger.Info("Player registered", map[string]interface{}{
		"player_id":   player.ID,
		"telegram_id": player.TelegramID,
	})
	return player.ToResponse(), true, nil
}

func (s *playerService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.PlayerResponse, error) {
	player, err := s.playerRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, model.NewPlayerNotFoundError()
		}
		return nil, err
	}
	return player.ToResponse(), nil
}
