package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"campaign-backend/internal/shared/apperror"
)

// ErrorBody is the shape of every error response
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MessageBody struct {
	Message string `json:"message"`
}

// Success writes data as-is; the wire contract has no envelope
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// Error maps a service error to status code and body
func Error(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
		ErrorResponse(c, appErr.Kind.HTTPStatus(), appErr.Code, appErr.Message)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	InternalServerError(c, "internal server error")
}

// BadRequest is used by handlers for malformed input rejected before the service is called
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, string(apperror.KindValidation), message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, string(apperror.KindInternal), message)
}
