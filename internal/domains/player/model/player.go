package model

import "time"

// Player is a registered user identified by their telegram id
type Player struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Bio        string    `json:"bio"`
	Admin      bool      `json:"admin"`
	Verified   bool      `json:"verified"`
	AvatarURL  *string   `json:"avatar_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type PlayerResponse struct {
	ID         int64   `json:"id"`
	TelegramID int64   `json:"telegram_id"`
	Bio        string  `json:"bio"`
	Admin      bool    `json:"admin"`
	Verified   bool    `json:"verified"`
	AvatarURL  *string `json:"avatar_url"`
}

func (p *Player) ToResponse() *PlayerResponse {
	return &PlayerResponse{
		ID:         p.ID,
		TelegramID: p.TelegramID,
		Bio:        p.Bio,
		Admin:      p.Admin,
		Verified:   p.Verified,
		AvatarURL:  p.AvatarURL,
	}
}
