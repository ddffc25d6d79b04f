package authhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/responses"
)

// Handler manages owner registration endpoints.
type Handler struct {
	users  *user.Service
	logger zerolog.Logger
}

// NewAuthHandler constructs a new auth handler.
func NewAuthHandler(users *user.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		users:  users,
		logger: logger.With().Str("component", "auth-handler").Logger(),
	}
}

type registerRequest struct {
	Email string  `json:"email" binding:"required"`
	Name  *string `json:"name,omitempty"`
}

type registerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register registers a key owner. Registering an existing email returns
// the existing record.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "invalid request payload")
		return
	}

	u, err := h.users.EnsureUser(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		if errors.Is(err, user.ErrInvalidEmail) {
			responses.HandleErrorWithStatus(c, http.StatusBadRequest, err, "a valid email is required")
			return
		}
		h.logger.Error().Err(err).Msg("failed to register owner")
		responses.HandleError(c, err, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
}
