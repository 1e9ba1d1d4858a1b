package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campaign-backend/internal/domains/player/model"
	"campaign-backend/internal/domains/player/service"
	"campaign-backend/internal/shared/response"
	"campaign-backend/internal/shared/utils"
)

type PlayerHandler struct {
	playerService service.ServiceInterface
}

func NewPlayerHandler(playerService service.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// Register gets or creates a player
// POST /player/register
func (h *PlayerHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	player, created, err := h.playerService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, player)
}

// Get returns a player by telegram id
// GET /player/get?telegram_id=
func (h *PlayerHandler) Get(c *gin.Context) {
	telegramID, present, err := utils.QueryInt64(c, "telegram_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !present {
		response.BadRequest(c, "telegram_id is required")
		return
	}

	player, err := h.playerService.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, player)
}
