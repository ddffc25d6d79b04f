package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code          string `json:"code,omitempty"` // UUID from PlatformError
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	ErrorInstance error  `json:"-"`
	RequestID     string `json:"request_id,omitempty"`
}

// HandleError handles domain errors and returns appropriate HTTP responses
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}

		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         errorMessage,
			Message:       errorMessage,
			ErrorInstance: domainErr,
			RequestID:     domainErr.GetRequestID(),
		})
		return
	}
	// Non-platform errors
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
	})
}

// HandleErrorWithStatus writes an error response with an explicit status code
func HandleErrorWithStatus(reqCtx *gin.Context, status int, err error, message string) {
	resp := ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
	}
	reqCtx.AbortWithStatusJSON(status, resp)
}
