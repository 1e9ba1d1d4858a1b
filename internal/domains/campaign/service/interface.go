package service

import (
	"context"

	"campaign-backend/internal/domains/campaign/model"
)

type ServiceInterface interface {
	// CreateCampaign creates the campaign for the player with this telegram id and makes them owner
	CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (*model.CreateCampaignResponse, error)

	// GetCampaign hides private campaigns from non-members behind NotFound
	GetCampaign(ctx context.Context, campaignID int64, userID *int64) (*model.CampaignResponse, error)

	// ListCampaigns returns public campaigns plus the user's own
	ListCampaigns(ctx context.Context, userID *int64) ([]*model.CampaignResponse, error)

	// AddMember upserts the user's membership with role player, resetting any elevated role
	AddMember(ctx context.Context, req model.AddMemberRequest) (*model.MembershipResult, error)

	// EditPermissions changes the role of an existing member; never creates memberships
	EditPermissions(ctx context.Context, req model.EditPermissionsRequest) (string, error)

	// EditCampaign replaces description and/or icon
	EditCampaign(ctx context.Context, req model.EditCampaignRequest) (*model.CampaignResponse, error)
}
