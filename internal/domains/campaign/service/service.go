package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"campaign-backend/internal/domains/campaign/model"
	"campaign-backend/internal/domains/campaign/repository"
	playerModel "campaign-backend/internal/domains/player/model"
	playerRepo "campaign-backend/internal/domains/player/repository"
	"campaign-backend/pkg/logger"
	"campaign-backend/pkg/storage"
)

// IconEncoder turns an uploaded image of any supported format into PNG bytes
type IconEncoder interface {
	ToPNG(data []byte) ([]byte, error)
}

type campaignService struct {
	campaignRepo repository.CampaignRepository
	playerRepo   playerRepo.PlayerRepository
	blobs        storage.BlobStore
	icons        IconEncoder
}

func NewCampaignService(
	campaignRepo repository.CampaignRepository,
	playerRepo playerRepo.PlayerRepository,
	blobs storage.BlobStore,
	icons IconEncoder,
) ServiceInterface {
	return &campaignService{
		campaignRepo: campaignRepo,
		playerRepo:   playerRepo,
		blobs:        blobs,
		icons:        icons,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *campaignService) CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (*model.CreateCampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	player, err := s.playerRepo.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		if errors.Is(err, playerModel.ErrPlayerNotFound) {
			return nil, playerModel.NewPlayerNotFoundError()
		}
		return nil, err
	}

	campaign := &model.Campaign{
		Title:    req.Title,
		Verified: player.Verified,
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}

	// The icon is stored before the rows so a broken image never leaves a campaign behind
	if req.Icon != nil && *req.Icon != "" {
		if err := s.storeIcon(ctx, campaign, *req.Icon); err != nil {
			return nil, err
		}
	}

	if err := s.campaignRepo.CreateWithOwner(ctx, campaign, player.ID); err != nil {
		s.discardIcon(ctx, campaign.IconKey)
		return nil, err
	}

	logger.Info("Campaign created", map[string]interface{}{
		"campaign_id": campaign.ID,
		"owner_id":    player.ID,
		"verified":    campaign.Verified,
	})

	return &model.CreateCampaignResponse{
		Message:    "created",
		CampaignID: campaign.ID,
	}, nil
}

// =====================================================
// READ
// =====================================================

func (s *campaignService) GetCampaign(ctx context.Context, campaignID int64, userID *int64) (*model.CampaignResponse, error) {
	campaign, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Private {
		if userID == nil {
			return nil, model.NewCampaignNotFoundError()
		}
		if _, err := s.campaignRepo.GetMembership(ctx, campaignID, *userID); err != nil {
			if errors.Is(err, model.ErrMembershipNotFound) {
				return nil, model.NewCampaignNotFoundError()
			}
			return nil, err
		}
	}

	return campaign.ToResponse(), nil
}

func (s *campaignService) ListCampaigns(ctx context.Context, userID *int64) ([]*model.CampaignResponse, error) {
	campaigns, err := s.campaignRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// =====================================================
// MEMBERSHIP
// =====================================================

func (s *campaignService) AddMember(ctx context.Context, req model.AddMemberRequest) (*model.MembershipResult, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	campaign, err := s.getCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, campaign.ID, req.OwnerID, "only the owner can add members"); err != nil {
		return nil, err
	}

	user, err := s.playerRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, playerModel.ErrPlayerNotFound) {
			return nil, playerModel.NewPlayerNotFoundError()
		}
		return nil, err
	}

	// Re-adding an existing member resets them to player, whatever their role was
	created, err := s.campaignRepo.UpsertMembership(ctx, campaign.ID, user.ID, model.RolePlayer)
	if err != nil {
		return nil, err
	}

	return &model.MembershipResult{
		Message: fmt.Sprintf("User %d added to campaign %d", user.ID, campaign.ID),
		Created: created,
	}, nil
}

func (s *campaignService) EditPermissions(ctx context.Context, req model.EditPermissionsRequest) (string, error) {
	if req.Status == nil {
		return "", model.NewStatusRequiredError()
	}
	role, err := model.ParseRole(*req.Status)
	if err != nil {
		return "", model.NewInvalidStatusError(err)
	}
	if err := req.Validate(); err != nil {
		return "", model.NewInvalidRequestError(err)
	}

	campaign, err := s.getCampaign(ctx, req.CampaignID)
	if err != nil {
		return "", err
	}

	if err := s.requireOwner(ctx, campaign.ID, req.OwnerID, "only the owner can edit permissions"); err != nil {
		return "", err
	}

	if err := s.campaignRepo.UpdateMembershipRole(ctx, campaign.ID, req.UserID, role); err != nil {
		if errors.Is(err, model.ErrMembershipNotFound) {
			return "", model.NewMembershipNotFoundError()
		}
		return "", err
	}

	return fmt.Sprintf("Updated user %d role to %d in campaign %d", req.UserID, role, campaign.ID), nil
}

// =====================================================
// EDIT
// =====================================================

func (s *campaignService) EditCampaign(ctx context.Context, req model.EditCampaignRequest) (*model.CampaignResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidRequestError(err)
	}

	campaign, err := s.getCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, campaign.ID, req.OwnerID, "only the owner can edit the campaign"); err != nil {
		return nil, err
	}

	if req.Description != nil {
		campaign.Description = *req.Description
	}

	previousIcon := campaign.IconKey
	if req.Icon != nil && *req.Icon != "" {
		if err := s.storeIcon(ctx, campaign, *req.Icon); err != nil {
			return nil, err
		}
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		if campaign.IconKey != previousIcon {
			s.discardIcon(ctx, campaign.IconKey)
		}
		if errors.Is(err, model.ErrCampaignNotFound) {
			return nil, model.NewCampaignNotFoundError()
		}
		return nil, err
	}

	if campaign.IconKey != previousIcon {
		s.discardIcon(ctx, previousIcon)
	}

	return campaign.ToResponse(), nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *campaignService) getCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCampaignNotFound) {
			return nil, model.NewCampaignNotFoundError()
		}
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) requireOwner(ctx context.Context, campaignID, userID int64, message string) error {
	membership, err := s.campaignRepo.GetMembership(ctx, campaignID, userID)
	if err != nil {
		if errors.Is(err, model.ErrMembershipNotFound) {
			return model.NewNotOwnerError(message)
		}
		return err
	}
	if !membership.Role.AtLeast(model.RoleOwner) {
		return model.NewNotOwnerError(message)
	}
	return nil
}

// storeIcon decodes the base64 payload, re-encodes it as PNG and uploads it.
// On success campaign.IconKey and campaign.IconURL point at the new object.
func (s *campaignService) storeIcon(ctx context.Context, campaign *model.Campaign, encoded string) error {
	raw, err := decodeBase64(encoded)
	if err != nil {
		return model.NewInvalidIconError(err)
	}

	png, err := s.icons.ToPNG(raw)
	if err != nil {
		return model.NewInvalidIconError(err)
	}

	key := iconKey(campaign.Title)
	url, err := s.blobs.Upload(ctx, key, png, "image/png")
	if err != nil {
		return fmt.Errorf("failed to store campaign icon: %w", err)
	}

	campaign.IconKey = &key
	campaign.IconURL = &url
	return nil
}

func (s *campaignService) discardIcon(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := s.blobs.Delete(ctx, *key); err != nil {
		logger.Error("failed to delete campaign icon "+*key, err)
	}
}

// decodeBase64 accepts padded or unpadded input, optionally as a data URL
func decodeBase64(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}
	encoded = strings.TrimSpace(encoded)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return raw, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(encoded); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// iconKey names the blob after the campaign title; the random suffix keeps equal titles apart
func iconKey(title string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(title))
	return fmt.Sprintf("campaign_icons/%s_%s.png", name, uuid.NewString()[:8])
}
