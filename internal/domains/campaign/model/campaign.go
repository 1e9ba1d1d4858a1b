package model

import "time"

// Campaign is a named container players join under a Role
type Campaign struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconKey     *string   `json:"icon_key"`
	IconURL     *string   `json:"icon_url"`
	Verified    bool      `json:"verified"`
	Private     bool      `json:"private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Membership grants a player a role within a campaign.
// At most one row exists per (UserID, CampaignID).
type Membership struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"user_id"`
	CampaignID int64 `json:"campaign_id"`
	Role       Role  `json:"role"`
}

type CampaignResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
	Verified    bool    `json:"verified"`
	Private     bool    `json:"private"`
}

func (c *Campaign) ToResponse() *CampaignResponse {
	return &CampaignResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.IconURL,
		Verified:    c.Verified,
		Private:     c.Private,
	}
}
