package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Character is the row for a character sheet; the sheet itself lives in the blob store under DataKey
type Character struct {
	ID              int64     `json:"id"`
	OwnerID         *int64    `json:"owner_id"`
	OwnerTelegramID *int64    `json:"owner_telegram_id"` // joined from players, read only
	CampaignID      *int64    `json:"campaign_id"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DataKey is derived from the row id only, never from caller input
func DataKey(id int64) string {
	return fmt.Sprintf("characters/%d.json", id)
}

func (c *Character) DataKey() string {
	return DataKey(c.ID)
}

type CharacterResponse struct {
	ID              int64           `json:"id"`
	OwnerID         *int64          `json:"owner_id"`
	OwnerTelegramID *int64          `json:"owner_telegram_id"`
	CampaignID      *int64          `json:"campaign_id"`
	Data            json.RawMessage `json:"data"`
}

func (c *Character) ToResponse(data []byte) *CharacterResponse {
	return &CharacterResponse{
		ID:              c.ID,
		OwnerID:         c.OwnerID,
		OwnerTelegramID: c.OwnerTelegramID,
		CampaignID:      c.CampaignID,
		Data:            json.RawMessage(data),
	}
}
