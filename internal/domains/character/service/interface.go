package service

import (
	"context"

	"campaign-backend/internal/domains/character/model"
)

type ServiceInterface interface {
	// Upload stores a new character sheet for an existing player and campaign
	Upload(ctx context.Context, req model.UploadCharacterRequest) (*model.CharacterResponse, error)

	Get(ctx context.Context, charID int64) (*model.CharacterResponse, error)

	// GetPath returns the value at path, or JSON null when the path does not resolve
	GetPath(ctx context.Context, req model.GetPathRequest) (*model.PathValueResponse, error)

	// SetPath applies values at path; Updated=false means the stored document is unchanged
	SetPath(ctx context.Context, req model.SetPathRequest) (*model.SetPathResponse, error)
}
