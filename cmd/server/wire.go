//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/adarsh20n06-web/vetra-server/internal/domain"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces"
	"github.com/adarsh20n06-web/vetra-server/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
