package interfaces

import (
	"github.com/google/wire"

	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
