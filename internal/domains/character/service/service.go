package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	campaignModel "campaign-backend/internal/domains/campaign/model"
	campaignRepo "campaign-backend/internal/domains/campaign/repository"
	"campaign-backend/internal/domains/character/document"
	"campaign-backend/internal/domains/character/model"
	"campaign-backend/internal/domains/character/repository"
	playerModel "campaign-backend/internal/domains/player/model"
	playerRepo "campaign-backend/internal/domains/player/repository"
	"campaign-backend/pkg/logger"
	"campaign-backend/pkg/storage"
)

const documentContentType = "application/json"

type characterService struct {
	characterRepo repository.CharacterRepository
	playerRepo    playerRepo.PlayerRepository
	campaignRepo  campaignRepo.CampaignRepository
	blobs         storage.BlobStore
}

func NewCharacterService(
	characterRepo repository.CharacterRepository,
	playerRepo playerRepo.PlayerRepository,
	campaignRepo campaignRepo.CampaignRepository,
	blobs storage.BlobStore,
) ServiceInterface {
	return &characterService{
		characterRepo: characterRepo,
		playerRepo:    playerRepo,
		campaignRepo:  campaignRepo,
		blobs:         blobs,
	}
}

func (s *characterService) Upload(ctx context.Context, req model.UploadCharacterRequest) (*model.CharacterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}
	if err := req.ValidateData(); err != nil {
		return nil, model.NewInvalidDataError(err)
	}

	owner, err := s.playerRepo.GetByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, playerModel.ErrPlayerNotFound) {
			return nil, playerModel.NewPlayerNotFoundError()
		}
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		if errors.Is(err, campaignModel.ErrCampaignNotFound) {
			return nil, campaignModel.NewCampaignNotFoundError()
		}
		return nil, err
	}

	var data bytes.Buffer
	if err := json.Compact(&data, req.Data); err != nil {
		return nil, model.NewInvalidDataError(err)
	}

	character := &model.Character{
		OwnerID:         &owner.ID,
		OwnerTelegramID: &owner.TelegramID,
		CampaignID:      &campaign.ID,
	}

	uploaded := false
	err = s.characterRepo.Create(ctx, character, func(ctx context.Context, c *model.Character) error {
		if _, err := s.blobs.Upload(ctx, c.DataKey(), data.Bytes(), documentContentType); err != nil {
			return fmt.Errorf("failed to store character data: %w", err)
		}
		uploaded = true
		return nil
	})
	if err != nil {
		if uploaded {
			s.discardDocument(ctx, character.DataKey())
		}
		return nil, err
	}

	logger.Info("Character uploaded", map[string]interface{}{
		"character_id": character.ID,
		"owner_id":     owner.ID,
		"campaign_id":  campaign.ID,
	})

	return character.ToResponse(data.Bytes()), nil
}

func (s *characterService) Get(ctx context.Context, charID int64) (*model.CharacterResponse, error) {
	character, err := s.getCharacter(ctx, charID)
	if err != nil {
		return nil, err
	}

	data, err := s.loadDocument(ctx, character)
	if err != nil {
		return nil, err
	}

	return character.ToResponse(data), nil
}

func (s *characterService) GetPath(ctx context.Context, req model.GetPathRequest) (*model.PathValueResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	character, err := s.getCharacter(ctx, req.CharID)
	if err != nil {
		return nil, err
	}

	data, err := s.loadDocument(ctx, character)
	if err != nil {
		return nil, err
	}

	root, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("character %d has a corrupt document: %w", character.ID, err)
	}

	value, ok := document.Lookup(root, req.Path)
	if !ok {
		return &model.PathValueResponse{Value: json.RawMessage("null")}, nil
	}

	raw, err := document.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value at %s: %w", req.Path, err)
	}
	return &model.PathValueResponse{Value: raw}, nil
}

func (s *characterService) SetPath(ctx context.Context, req model.SetPathRequest) (*model.SetPathResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	assignments := make(map[string]interface{}, len(req.Values))
	for field, raw := range req.Values {
		value, err := document.Decode(raw)
		if err != nil {
			return nil, model.NewInvalidRequestError(fmt.Errorf("values.%s: %w", field, err))
		}
		assignments[field] = value
	}

	written := false
	updated, err := s.characterRepo.UpdateDocument(ctx, req.CharID, func(ctx context.Context, c *model.Character) (repository.PersistFunc, error) {
		data, err := s.loadDocument(ctx, c)
		if err != nil {
			return nil, err
		}

		root, err := document.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("character %d has a corrupt document: %w", c.ID, err)
		}

		if !document.Set(root, req.Path, assignments) {
			return nil, nil
		}

		out, err := document.Encode(root)
		if err != nil {
			return nil, fmt.Errorf("failed to encode character %d: %w", c.ID, err)
		}

		return func(ctx context.Context, c *model.Character) error {
			if _, err := s.blobs.Upload(ctx, c.DataKey(), out, documentContentType); err != nil {
				return fmt.Errorf("failed to store character data: %w", err)
			}
			written = true
			return nil
		}, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrCharacterNotFound) {
			return nil, model.NewCharacterNotFoundError()
		}
		if written {
			// Only the commit can fail after the blob write
			logger.Error(fmt.Sprintf("character %d document written but version not committed", req.CharID), err)
		}
		return nil, err
	}

	if !updated {
		logger.Debug(fmt.Sprintf("set-path on character %d did not resolve %s", req.CharID, req.Path))
	}

	return &model.SetPathResponse{Updated: updated}, nil
}

func (s *characterService) getCharacter(ctx context.Context, id int64) (*model.Character, error) {
	character, err := s.characterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCharacterNotFound) {
			return nil, model.NewCharacterNotFoundError()
		}
		return nil, err
	}
	return character, nil
}

func (s *characterService) loadDocument(ctx context.Context, character *model.Character) ([]byte, error) {
	data, err := s.blobs.Download(ctx, character.DataKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load character %d data: %w", character.ID, err)
	}
	return data, nil
}

func (s *characterService) discardDocument(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		logger.Error("failed to delete character data "+key, err)
	}
}
