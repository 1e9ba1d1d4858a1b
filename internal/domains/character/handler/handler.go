package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campaign-backend/internal/domains/character/model"
	"campaign-backend/internal/domains/character/service"
	"campaign-backend/internal/shared/response"
	"campaign-backend/internal/shared/utils"
)

type CharacterHandler struct {
	characterService service.ServiceInterface
}

func NewCharacterHandler(characterService service.ServiceInterface) *CharacterHandler {
	return &CharacterHandler{characterService: characterService}
}

// Get returns a character with its document
// GET /character/get?char_id=
func (h *CharacterHandler) Get(c *gin.Context) {
	charID, present, err := utils.QueryInt64(c, "char_id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !present {
		response.BadRequest(c, "char_id is required")
		return
	}

	character, err := h.characterService.Get(c.Request.Context(), charID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, character)
}

// Upload creates a character
// POST /character/upload
func (h *CharacterHandler) Upload(c *gin.Context) {
	var req model.UploadCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	character, err := h.characterService.Upload(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, character)
}

// GetPath reads one value out of the document
// POST /character/get-path
func (h *CharacterHandler) GetPath(c *gin.Context) {
	var req model.GetPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	value, err := h.characterService.GetPath(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, value)
}

// SetPath writes fields on one node of the document
// POST /character/set-path
func (h *CharacterHandler) SetPath(c *gin.Context) {
	var req model.SetPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.characterService.SetPath(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
