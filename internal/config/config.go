package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings, resolved once at startup and
// immutable afterwards. Handlers and services receive what they need
// through constructors instead of reading viper directly.
type Config struct {
	Port       string
	LogLevel   string
	DBPath     string
	UploadsDir string
	JWTSecret  string
}

const (
	defaultPort       = "8080"
	defaultLogLevel   = "info"
	defaultDBPath     = "blog.db"
	defaultUploadsDir = "uploads"
)

// Load reads configs/config.yml plus environment overrides. The JWT signing
// secret comes only from the environment; startup must fail without it.
func Load() (Config, error) {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// Missing file is fine: defaults + env cover everything but the secret.
	}

	if err := viper.BindEnv("jwt_secret", "JWT_SECRET"); err != nil {
		return Config{}, fmt.Errorf("bind JWT_SECRET: %w", err)
	}
	if err := viper.BindEnv("port", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind PORT: %w", err)
	}

	cfg := Config{
		Port:       stringOr("port", defaultPort),
		LogLevel:   stringOr("log_level", defaultLogLevel),
		DBPath:     stringOr("db.path", defaultDBPath),
		UploadsDir: stringOr("uploads.dir", defaultUploadsDir),
		JWTSecret:  viper.GetString("jwt_secret"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}

func stringOr(key, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}
