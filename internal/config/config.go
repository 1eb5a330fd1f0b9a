package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL        = "24h"
	defaultSignedURLTTL        = "1h"
	defaultMaxUploadSize       = int64(50 * 1024 * 1024)
	defaultDataDir             = "./data"
	defaultPublicOrigin        = "http://localhost:8080"
	defaultJWTSecret           = "change-me-jwt-secret"
	defaultStorageSignSecret   = "change-me-storage-secret"
	defaultDeleteGracePeriod   = "24h"
	defaultDownloadNeedsNoExp  = "false"
)

// Config is the full runtime configuration. Loaded once at startup;
// missing or default secrets in prod-like environments abort the process.
type Config struct {
	AppEnv        string
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	DataDir       string
	StorageSecret string
	SignedURLTTL  time.Duration
	MaxUploadSize int64
	PublicOrigin  string

	// DownloadRequiresNoExpiry reproduces the product rule that an
	// editor (download-capable) share may only be issued without an
	// expiry. Off by default.
	DownloadRequiresNoExpiry bool

	// DeleteGracePeriod is how long a soft-deleted file row may linger
	// before the reconcile job purges it.
	DeleteGracePeriod time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.StorageSecret = strings.TrimSpace(getEnv("STORAGE_SIGNING_SECRET", defaultStorageSignSecret))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.PublicOrigin = strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_ORIGIN", defaultPublicOrigin)), "/")
	cfg.MaxUploadSize = defaultMaxUploadSize
	cfg.DownloadRequiresNoExpiry = parseBoolEnv("SHARE_DOWNLOAD_REQUIRES_NO_EXPIRY", defaultDownloadNeedsNoExp)

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.SignedURLTTL, err = parseDurationEnv("SIGNED_URL_TTL", defaultSignedURLTTL)
	if err != nil {
		return nil, err
	}
	cfg.DeleteGracePeriod, err = parseDurationEnv("DELETE_GRACE_PERIOD", defaultDeleteGracePeriod)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.SignedURLTTL <= 0 {
		return fmt.Errorf("SIGNED_URL_TTL must be > 0")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.StorageSecret, defaultStorageSignSecret) {
			return fmt.Errorf("in prod/release STORAGE_SIGNING_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
