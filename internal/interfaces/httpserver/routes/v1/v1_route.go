package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/adarsh20n06-web/vetra-server/internal/config"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/auth"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/adminhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/apikeyhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/askhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/authhandler"
	middleware "github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/middlewares"
)

type V1Route struct {
	authHandler   *authhandler.Handler
	apiKeyHandler *apikeyhandler.Handler
	askHandler    *askhandler.Handler
	adminHandler  *adminhandler.Handler
	adminIssuer   *auth.AdminTokenIssuer
	config        *config.Config
}

func NewV1Route(
	authHandler *authhandler.Handler,
	apiKeyHandler *apikeyhandler.Handler,
	askHandler *askhandler.Handler,
	adminHandler *adminhandler.Handler,
	adminIssuer *auth.AdminTokenIssuer,
	cfg *config.Config,
) *V1Route {
	return &V1Route{
		authHandler,
		apiKeyHandler,
		askHandler,
		adminHandler,
		adminIssuer,
		cfg,
	}
}

// RegisterRouter wires the v1 API surface onto the router group.
func (r *V1Route) RegisterRouter(router *gin.RouterGroup) {
	v1 := router.Group("/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register",
		middleware.RateLimitMiddleware(r.config.RegisterRateLimit),
		r.authHandler.Register,
	)
	keys := authGroup.Group("/keys")
	keys.POST("",
		middleware.RateLimitMiddleware(r.config.IssueRateLimit),
		r.apiKeyHandler.Create,
	)
	keys.GET("", r.apiKeyHandler.List)
	keys.DELETE("/:id", r.apiKeyHandler.Revoke)

	v1.POST("/ask",
		middleware.RateLimitMiddleware(r.config.AskRateLimit),
		r.askHandler.Ask,
	)

	adminGroup := v1.Group("/admin")
	adminGroup.POST("/token", r.adminHandler.Token)
	adminGroup.GET("/overview", r.adminIssuer.Middleware(), r.adminHandler.Overview)
}
