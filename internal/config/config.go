package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"golang.org/x/crypto/bcrypt"
)

// Global singleton so init-time consumers can reach the parsed config.
var globalConfig *Config

// Config holds all environment backed configuration for vetra-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	RedisURL    string `env:"REDIS_URL"`

	// Audit vault (base64, must decode to exactly 32 bytes)
	VaultKey string `env:"VAULT_KEY,notEmpty"`

	// Admin surface
	AdminMasterKey string        `env:"ADMIN_MASTER_KEY,notEmpty"`
	AdminJWTSecret string        `env:"ADMIN_JWT_SECRET,notEmpty"`
	AdminTokenTTL  time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"1h"`

	// API keys
	APIKeyPrefix      string        `env:"API_KEY_PREFIX" envDefault:"vetra"`
	APIKeyExpiry      time.Duration `env:"API_KEY_EXPIRY" envDefault:"720h"`
	APIKeyMaxUses     int           `env:"API_KEY_MAX_USES" envDefault:"1000"`
	APIKeyBcryptCost  int           `env:"API_KEY_BCRYPT_COST" envDefault:"10"`
	BindClientAddress bool          `env:"BIND_CLIENT_ADDRESS" envDefault:"false"`

	// Prompt firewall
	MaxPromptLength  int      `env:"MAX_PROMPT_LENGTH" envDefault:"4000"`
	FirewallPatterns []string `env:"FIREWALL_PATTERNS" envSeparator:"," envDefault:"(ignore|bypass).*(rules|system),(hack|crack|steal|ddos),(admin|root|password)"`

	// Rate limits (per minute)
	AskRateLimit      float64 `env:"ASK_RATE_LIMIT" envDefault:"60"`
	IssueRateLimit    float64 `env:"ISSUE_RATE_LIMIT" envDefault:"3"`
	RegisterRateLimit float64 `env:"REGISTER_RATE_LIMIT" envDefault:"5"`

	// Conversation memory
	MemoryTTL    time.Duration `env:"MEMORY_TTL" envDefault:"30m"`
	MemoryWindow int           `env:"MEMORY_WINDOW" envDefault:"10"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"vetra-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"vetra"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := cfg.VaultKeyBytes(); err != nil {
		return nil, err
	}

	if cfg.APIKeyBcryptCost < bcrypt.MinCost || cfg.APIKeyBcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("API_KEY_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.APIKeyMaxUses <= 0 {
		return nil, fmt.Errorf("API_KEY_MAX_USES must be positive")
	}
	if cfg.MaxPromptLength <= 0 {
		return nil, fmt.Errorf("MAX_PROMPT_LENGTH must be positive")
	}

	cfg.APIKeyPrefix = strings.TrimSpace(cfg.APIKeyPrefix)
	if cfg.APIKeyPrefix == "" {
		cfg.APIKeyPrefix = "vetra"
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	globalConfig = cfg

	return cfg, nil
}

// VaultKeyBytes decodes the configured vault key and enforces the AES-256
// key length.
func (c *Config) VaultKeyBytes() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.VaultKey)
	if err != nil {
		return nil, fmt.Errorf("VAULT_KEY is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("VAULT_KEY must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// GetGlobal returns the global config instance.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
