package repository

import (
	"github.com/google/wire"

	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/repository/apikeyrepo"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/repository/auditrepo"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	apikeyrepo.NewAPIKeyRepository,
	auditrepo.NewAuditRepository,
	userrepo.NewUserGormRepository,
)
