package model

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"

	"campaign-backend/internal/domains/character/document"
)

// UploadCharacterRequest - POST /character/upload
type UploadCharacterRequest struct {
	OwnerID    int64           `json:"owner_id"`
	CampaignID int64           `json:"campaign_id"`
	Data       json.RawMessage `json:"data"`
}

func (r UploadCharacterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OwnerID, validation.Required.Error("owner_id is required")),
		validation.Field(&r.CampaignID, validation.Required.Error("campaign_id is required")),
	)
}

// ValidateData checks data is a JSON object; arrays and scalars are rejected
func (r UploadCharacterRequest) ValidateData() error {
	if len(r.Data) == 0 || !gjson.ValidBytes(r.Data) {
		return errors.New("data must be a JSON object")
	}
	if !gjson.ParseBytes(r.Data).IsObject() {
		return errors.New("data must be a JSON object")
	}
	return nil
}

// GetPathRequest - POST /character/get-path
type GetPathRequest struct {
	CharID int64         `json:"char_id"`
	Path   document.Path `json:"path"`
}

func (r GetPathRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CharID, validation.Required.Error("char_id is required")),
	)
}

// SetPathRequest - POST /character/set-path
type SetPathRequest struct {
	CharID int64                      `json:"char_id"`
	Path   document.Path              `json:"path"`
	Values map[string]json.RawMessage `json:"values"`
}

func (r SetPathRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CharID, validation.Required.Error("char_id is required")),
		validation.Field(&r.Values, validation.Required.Error("values must not be empty")),
	)
}

type PathValueResponse struct {
	Value json.RawMessage `json:"value"`
}

type SetPathResponse struct {
	Updated bool `json:"updated"`
}
