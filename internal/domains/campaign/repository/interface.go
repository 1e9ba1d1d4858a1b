package repository

import (
	"context"

	"campaign-backend/internal/domains/campaign/model"
)

type CampaignRepository interface {
	// GetByID returns model.ErrCampaignNotFound if the campaign does not exist
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)

	// ListVisible returns public campaigns plus, when userID is set, every campaign
	// the user is a member of. No duplicates, ordered by id.
	ListVisible(ctx context.Context, userID *int64) ([]*model.Campaign, error)

	// CreateWithOwner inserts the campaign and the owner's membership atomically
	CreateWithOwner(ctx context.Context, campaign *model.Campaign, ownerID int64) error

	// Update persists description and icon fields
	Update(ctx context.Context, campaign *model.Campaign) error

	// GetMembership returns model.ErrMembershipNotFound if no row exists for the pair
	GetMembership(ctx context.Context, campaignID, userID int64) (*model.Membership, error)

	// UpsertMembership inserts the membership or overwrites the role of the existing row
	// in one statement. created is true when a new row was inserted.
	UpsertMembership(ctx context.Context, campaignID, userID int64, role model.Role) (created bool, err error)

	// UpdateMembershipRole never inserts; returns model.ErrMembershipNotFound if no row exists
	UpdateMembershipRole(ctx context.Context, campaignID, userID int64, role model.Role) error
}
