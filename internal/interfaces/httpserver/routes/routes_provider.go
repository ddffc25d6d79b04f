package routes

import (
	"github.com/google/wire"

	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/adminhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/apikeyhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/askhandler"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/handlers/authhandler"
	v1 "github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/routes/v1"
)

var RouteProvider = wire.NewSet(
	// Handlers
	authhandler.NewAuthHandler,
	apikeyhandler.NewAPIKeyHandler,
	askhandler.NewAskHandler,
	adminhandler.NewAdminHandler,

	// Routes
	v1.NewV1Route,
)
