package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adarsh20n06-web/vetra-server/internal/config"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/admission"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/auth"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/brain"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/database/repository"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/logger"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/memory"
	"github.com/adarsh20n06-web/vetra-server/internal/infrastructure/vault"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideVault builds the audit vault from the configured key.
func ProvideVault(cfg *config.Config) (*vault.Vault, error) {
	key, err := cfg.VaultKeyBytes()
	if err != nil {
		return nil, err
	}
	return vault.New(key)
}

// ProvideMemory connects the prompt memory store. A missing REDIS_URL
// disables memory rather than failing startup.
func ProvideMemory(cfg *config.Config, log zerolog.Logger) (*memory.Store, error) {
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, prompt memory disabled")
		return nil, nil
	}
	return memory.NewStore(memory.Config{
		URL:    cfg.RedisURL,
		TTL:    cfg.MemoryTTL,
		Window: cfg.MemoryWindow,
	})
}

// ProvideResponder wires the placeholder brain as the downstream processor.
func ProvideResponder(store *memory.Store, log zerolog.Logger) admission.Responder {
	if store == nil {
		return brain.New(nil, log)
	}
	return brain.New(store, log)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Audit vault
	ProvideVault,

	// Prompt memory and downstream processor
	ProvideMemory,
	ProvideResponder,

	// Admin tokens
	auth.NewAdminTokenIssuer,

	// Logger
	logger.GetLogger,
)
