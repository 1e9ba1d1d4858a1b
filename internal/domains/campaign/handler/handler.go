package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campaign-backend/internal/domains/campaign/model"
	"campaign-backend/internal/domains/campaign/service"
	"campaign-backend/internal/shared/response"
	"campaign-backend/internal/shared/utils"
)

type CampaignHandler struct {
	campaignService service.ServiceInterface
}

func NewCampaignHandler(campaignService service.ServiceInterface) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create creates a campaign owned by the caller
// POST /campaign/create
func (h *CampaignHandler) Create(c *gin.Context) {
	var req model.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.campaignService.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Get returns one campaign, or the visible list when campaign_id is absent
// GET /campaign/get?campaign_id=&user_id=
func (h *CampaignHandler) Get(c *gin.Context) {
	userID, err := utils.OptionalQueryInt64(c, "user_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	campaignID, present, err := utils.QueryInt64(c, "campaign_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if !present {
		campaigns, err := h.campaignService.ListCampaigns(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, campaigns)
		return
	}

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), campaignID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}

// AddMember adds a player to the campaign with role player
// POST /campaign/add
func (h *CampaignHandler) AddMember(c *gin.Context) {
	var req model.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.campaignService.AddMember(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	response.Message(c, status, result.Message)
}

// EditPermissions changes a member's role
// POST /campaign/edit-permissions
func (h *CampaignHandler) EditPermissions(c *gin.Context) {
	var req model.EditPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	message, err := h.campaignService.EditPermissions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, message)
}

// Edit updates description and icon
// POST /campaign/edit
func (h *CampaignHandler) Edit(c *gin.Context) {
	var req model.EditCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	campaign, err := h.campaignService.EditCampaign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}
