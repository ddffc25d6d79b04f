package apikeyhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/metrics"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/responses"
)

// Handler manages API key HTTP endpoints.
type Handler struct {
	keys   *apikey.Service
	users  *user.Service
	logger zerolog.Logger
}

// NewAPIKeyHandler constructs a new API key handler.
func NewAPIKeyHandler(keys *apikey.Service, users *user.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		keys:   keys,
		users:  users,
		logger: logger.With().Str("component", "api-key-handler").Logger(),
	}
}

type createRequest struct {
	Email string `json:"email"`
}

type apiKeyResponse struct {
	ID         string     `json:"id"`
	Suffix     string     `json:"suffix"`
	Uses       int        `json:"uses"`
	MaxUses    int        `json:"max_uses"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	Status     string     `json:"status"`
	Key        string     `json:"key,omitempty"`
}

// ownerEmail resolves the caller identity for key management. A trusted
// gateway can assert it via the X-User-Email header; otherwise the
// request carries it explicitly.
func ownerEmail(c *gin.Context, fallback string) string {
	if email := c.GetHeader("X-User-Email"); email != "" {
		return email
	}
	return fallback
}

// Create issues a new API key for a registered owner. The plaintext
// appears in this response and nowhere else.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "invalid request payload")
		return
	}
	email := ownerEmail(c, req.Email)
	if email == "" {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, nil, "owner email is required")
		return
	}

	owner, err := h.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to look up owner")
		responses.HandleError(c, err, "failed to create api key")
		return
	}
	if owner == nil {
		responses.HandleErrorWithStatus(c, http.StatusNotFound, nil, "email is not registered")
		return
	}

	key, secret, err := h.keys.Issue(c.Request.Context(), owner.Email, c.ClientIP())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create api key")
		responses.HandleError(c, err, "failed to create api key")
		return
	}
	metrics.KeysIssuedTotal.Inc()

	c.JSON(http.StatusCreated, toResponse(key, secret))
}

// List returns the owner's keys without any secret material.
func (h *Handler) List(c *gin.Context) {
	email := ownerEmail(c, c.Query("email"))
	if email == "" {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, nil, "owner email is required")
		return
	}

	items, err := h.keys.List(c.Request.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list api keys")
		responses.HandleError(c, err, "failed to list api keys")
		return
	}

	out := make([]apiKeyResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i], ""))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// Revoke marks a key revoked. Revoking an already revoked key succeeds.
func (h *Handler) Revoke(c *gin.Context) {
	email := ownerEmail(c, c.Query("email"))
	if email == "" {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, nil, "owner email is required")
		return
	}

	err := h.keys.Revoke(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		if errors.Is(err, apikey.ErrNotFound) {
			responses.HandleErrorWithStatus(c, http.StatusNotFound, err, "api key not found")
			return
		}
		h.logger.Error().Err(err).Msg("failed to revoke api key")
		responses.HandleError(c, err, "failed to revoke api key")
		return
	}

	c.Status(http.StatusNoContent)
}

func toResponse(key *apikey.APIKey, secret string) apiKeyResponse {
	return apiKeyResponse{
		ID:         key.ID,
		Suffix:     key.Suffix,
		Uses:       key.Uses,
		MaxUses:    key.MaxUses,
		CreatedAt:  key.CreatedAt,
		ExpiresAt:  key.ExpiresAt,
		RevokedAt:  key.RevokedAt,
		LastUsedAt: key.LastUsedAt,
		Status:     keyStatus(key),
		Key:        secret,
	}
}

func keyStatus(key *apikey.APIKey) string {
	now := time.Now()
	switch {
	case key.RevokedAt != nil:
		return "revoked"
	case !now.Before(key.ExpiresAt):
		return "expired"
	case key.Uses >= key.MaxUses:
		return "exhausted"
	default:
		return "active"
	}
}
