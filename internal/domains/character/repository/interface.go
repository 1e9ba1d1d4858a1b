package repository

import (
	"context"

	"campaign-backend/internal/domains/character/model"
)

// PersistFunc writes the character's document once its id is known.
// Returning an error rolls the row back.
type PersistFunc func(ctx context.Context, character *model.Character) error

// MutateFunc edits the document of a locked character row and returns the
// write that stores it. A nil save means nothing changed.
type MutateFunc func(ctx context.Context, character *model.Character) (save PersistFunc, err error)

type CharacterRepository interface {
	// Create inserts the row, then calls persist inside the same transaction
	Create(ctx context.Context, character *model.Character, persist PersistFunc) error

	// GetByID returns model.ErrCharacterNotFound if the character does not exist
	GetByID(ctx context.Context, id int64) (*model.Character, error)

	// UpdateDocument locks the row, runs mutate, bumps version and only then calls save,
	// as the last step before commit
	UpdateDocument(ctx context.Context, id int64, mutate MutateFunc) (changed bool, err error)
}
