package domain

import (
	"github.com/google/wire"

	"github.com/adarsh20n06-web/vetra-server/internal/config"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/admission"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/apikey"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/audit"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/firewall"
	"github.com/adarsh20n06-web/vetra-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// User domain
	user.NewService,

	// API keys
	ProvideCodec,
	ProvideAPIKeyConfig,
	apikey.NewService,

	// Prompt firewall
	ProvideFirewall,

	// Audit
	audit.NewRecorder,

	// Admission pipeline
	ProvideIdentityResolver,
	ProvideAuditor,
	admission.NewController,
)

func ProvideAPIKeyConfig(cfg *config.Config) apikey.Config {
	return apikey.Config{
		Expiry:      cfg.APIKeyExpiry,
		MaxUses:     cfg.APIKeyMaxUses,
		BindAddress: cfg.BindClientAddress,
	}
}

func ProvideCodec(cfg *config.Config) *apikey.Codec {
	return apikey.NewCodec(cfg.APIKeyPrefix, cfg.APIKeyBcryptCost)
}

func ProvideFirewall(cfg *config.Config) (*firewall.Firewall, error) {
	return firewall.New(firewall.Config{
		MaxPromptLength: cfg.MaxPromptLength,
		Patterns:        cfg.FirewallPatterns,
	})
}

func ProvideIdentityResolver(keys *apikey.Service) admission.IdentityResolver {
	return admission.NewAPIKeyResolver(keys)
}

func ProvideAuditor(recorder *audit.Recorder) admission.Auditor {
	return recorder
}
