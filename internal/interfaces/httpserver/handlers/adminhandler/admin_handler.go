package adminhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/audit"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/auth"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/responses"
)

// Handler serves the operator surface.
type Handler struct {
	issuer   *auth.AdminTokenIssuer
	users    *user.Service
	keys     apikey.Repository
	auditLog audit.Repository
	logger   zerolog.Logger
}

// NewAdminHandler constructs a new admin handler.
func NewAdminHandler(issuer *auth.AdminTokenIssuer, users *user.Service, keys apikey.Repository, auditLog audit.Repository, logger zerolog.Logger) *Handler {
	return &Handler{
		issuer:   issuer,
		users:    users,
		keys:     keys,
		auditLog: auditLog,
		logger:   logger.With().Str("component", "admin-handler").Logger(),
	}
}

type tokenRequest struct {
	MasterKey string `json:"master_key" binding:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token exchanges the master key for a short-lived admin token.
func (h *Handler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "invalid request payload")
		return
	}

	token, expiresAt, err := h.issuer.Issue(req.MasterKey)
	if err != nil {
		if errors.Is(err, auth.ErrBadMasterKey) {
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "invalid master key")
			return
		}
		h.logger.Error().Err(err).Msg("failed to sign admin token")
		responses.HandleError(c, err, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

type overviewResponse struct {
	Users        int64 `json:"users"`
	APIKeys      int64 `json:"api_keys"`
	AuditEntries int64 `json:"audit_entries"`
}

// Overview reports aggregate counts. Audit payloads stay encrypted;
// only totals leave the store.
func (h *Handler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.users.Count(ctx)
	if err != nil {
		responses.HandleError(c, err, "failed to load overview")
		return
	}
	keys, err := h.keys.Count(ctx)
	if err != nil {
		responses.HandleError(c, err, "failed to load overview")
		return
	}
	entries, err := h.auditLog.Count(ctx)
	if err != nil {
		responses.HandleError(c, err, "failed to load overview")
		return
	}

	c.JSON(http.StatusOK, overviewResponse{
		Users:        users,
		APIKeys:      keys,
		AuditEntries: entries,
	})
}
