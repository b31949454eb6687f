package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const defaultAllowedOrigin = "http://localhost:3000"

type Config struct {
	DatabaseURL      string   `env:"DATABASE_URL,required,notEmpty"`
	Port             string   `env:"PORT" envDefault:"5200"`
	GameServiceToken string   `env:"GAME_SERVICE_TOKEN,required,notEmpty"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RandomSeed is nil unless RANDOM_SEED is set; a nil seed means a crypto-random one.
	RandomSeed *uint64 `env:"RANDOM_SEED"`

	CatalogSourceURL    string        `env:"CATALOG_SOURCE_URL"`
	CatalogSyncInterval time.Duration `env:"CATALOG_SYNC_INTERVAL" envDefault:"1h"`

	RateLimit       int           `env:"RATE_LIMIT" envDefault:"120"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Archive ArchiveConfig
}

// ArchiveConfig points at the S3-compatible bucket that receives the nightly battle logs.
type ArchiveConfig struct {
	Bucket          string `env:"ARCHIVE_BUCKET"`
	AccountID       string `env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	Endpoint        string `env:"ARCHIVE_ENDPOINT"`
}

func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load reads the service configuration from the environment. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: " + defaultAllowedOrigin)
		origins = []string{defaultAllowedOrigin}
	}
	cfg.AllowedOrigins = origins

	if cfg.CatalogSyncInterval <= 0 {
		return nil, fmt.Errorf("CATALOG_SYNC_INTERVAL must be positive, got %s", cfg.CatalogSyncInterval)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}

	if cfg.Archive.Enabled() && cfg.Archive.Endpoint == "" && cfg.Archive.AccountID == "" {
		return nil, fmt.Errorf("ARCHIVE_BUCKET is set but neither ARCHIVE_ENDPOINT nor R2_ACCOUNT_ID is")
	}

	return cfg, nil
}
