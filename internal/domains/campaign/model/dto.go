package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1023
)

// CreateCampaignRequest - POST /campaign/create
type CreateCampaignRequest struct {
	TelegramID  int64   `json:"telegram_id"`
	Title       string  `json:"title"`
	Icon        *string `json:"icon,omitempty"` // base64 image, any decodable format
	Description *string `json:"description,omitempty"`
}

func (r CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TelegramID, validation.Required.Error("telegram_id is required")),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
	)
}

// AddMemberRequest - POST /campaign/add
type AddMemberRequest struct {
	CampaignID int64 `json:"campaign_id"`
	OwnerID    int64 `json:"owner_id"`
	UserID     int64 `json:"user_id"`
}

func (r AddMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CampaignID, validation.Required.Error("campaign_id is required")),
		validation.Field(&r.OwnerID, validation.Required.Error("owner_id is required")),
		validation.Field(&r.UserID, validation.Required.Error("user_id is required")),
	)
}

// EditPermissionsRequest - POST /campaign/edit-permissions
type EditPermissionsRequest struct {
	CampaignID int64 `json:"campaign_id"`
	OwnerID    int64 `json:"owner_id"`
	UserID     int64 `json:"user_id"`
	Status     *int  `json:"status"`
}

func (r EditPermissionsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CampaignID, validation.Required.Error("campaign_id is required")),
		validation.Field(&r.OwnerID, validation.Required.Error("owner_id is required")),
		validation.Field(&r.UserID, validation.Required.Error("user_id is required")),
	)
}

// EditCampaignRequest - POST /campaign/edit
type EditCampaignRequest struct {
	CampaignID  int64   `json:"campaign_id"`
	OwnerID     int64   `json:"owner_id"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (r EditCampaignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CampaignID, validation.Required.Error("campaign_id is required")),
		validation.Field(&r.OwnerID, validation.Required.Error("owner_id is required")),
		validation.Field(&r.Description, validation.RuneLength(0, MaxDescriptionLength)),
	)
}

type CreateCampaignResponse struct {
	Message    string `json:"message"`
	CampaignID int64  `json:"campaign_id"`
}

// MembershipResult reports whether add-member inserted a new row
type MembershipResult struct {
	Message string `json:"message"`
	Created bool   `json:"-"`
}
