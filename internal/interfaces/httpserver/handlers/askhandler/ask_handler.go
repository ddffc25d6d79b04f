package askhandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/admission"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/metrics"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/responses"
	"github.com/adarsh20n06-web/vetra-server/internal/utils/platformerrors"
)

// Handler serves the prompt admission endpoint.
type Handler struct {
	controller *admission.Controller
	logger     zerolog.Logger
}

// NewAskHandler constructs a new ask handler.
func NewAskHandler(controller *admission.Controller, logger zerolog.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger.With().Str("component", "ask-handler").Logger(),
	}
}

type askRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type askResponse struct {
	Answer string `json:"answer"`
	Reason string `json:"reason,omitempty"`
}

// Ask runs the admission pipeline for one prompt.
func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "invalid request payload")
		return
	}

	result, err := h.controller.Admit(c.Request.Context(), admission.Request{
		RemoteAddr: c.ClientIP(),
		Credential: credential(c),
		Prompt:     req.Prompt,
		Endpoint:   c.FullPath(),
	})
	if err != nil {
		h.handleAdmitError(c, err)
		return
	}

	metrics.RecordAdmission("admitted")
	c.JSON(http.StatusOK, askResponse{
		Answer: result.Answer.Text,
		Reason: result.Answer.Reason,
	})
}

func (h *Handler) handleAdmitError(c *gin.Context, err error) {
	var fwErr *admission.FirewallError
	switch {
	case errors.As(err, &fwErr):
		metrics.RecordAdmission("rejected_firewall")
		metrics.RecordFirewallRejection(string(fwErr.Decision.Reason))
		responses.HandleErrorWithStatus(c, http.StatusUnprocessableEntity, err, "prompt rejected: "+string(fwErr.Decision.Reason))
	case errors.Is(err, admission.ErrMissingCredential):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("missing")
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "api key required")
	case errors.Is(err, apikey.ErrNotFound):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("not_found")
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "invalid api key")
	case errors.Is(err, apikey.ErrExpired):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("expired")
		responses.HandleErrorWithStatus(c, http.StatusForbidden, err, "api key expired")
	case errors.Is(err, apikey.ErrRevoked):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("revoked")
		responses.HandleErrorWithStatus(c, http.StatusForbidden, err, "api key revoked")
	case errors.Is(err, apikey.ErrQuotaExhausted):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("quota_exhausted")
		responses.HandleErrorWithStatus(c, http.StatusTooManyRequests, err, "api key usage limit reached")
	case errors.Is(err, apikey.ErrAddressMismatch):
		metrics.RecordAdmission("rejected_credential")
		metrics.RecordKeyVerification("address_mismatch")
		responses.HandleErrorWithStatus(c, http.StatusForbidden, err, "api key is bound to a different address")
	default:
		metrics.RecordAdmission("failed")
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError) {
			metrics.AuditFailuresTotal.Inc()
		}
		h.logger.Error().Err(err).Msg("admission pipeline failed")
		responses.HandleError(c, err, "request could not be processed")
	}
}

// credential extracts the API key from X-API-Key or a bearer header.
func credential(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
