package config

import (
	"time"

	"github.com/spf13/viper"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type (
	Config struct {
		HTTP
		Database
		JWT
		Auth
		RateLimit
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	JWT struct {
		Secret string
		Expiry time.Duration
	}
	Auth struct {
		BcryptCost int
	}
	RateLimit struct {
		MaxRequests int           // Max requests per window per client IP
		Window      time.Duration // Fixed window size
	}
	Global struct {
		Env                      Environment
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("app_env", "development")

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiry", "72h")
	v.SetDefault("bcrypt_cost", 10)

	// Rate limiting defaults (per client IP, across /api/)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window", "15m")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		JWT: JWT{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: v.GetDuration("JWT_EXPIRY"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		RateLimit: RateLimit{
			MaxRequests: v.GetInt("RATE_LIMIT_MAX"),
			Window:      v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Global: Global{
			Env:                      Environment(v.GetString("APP_ENV")),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

// IsProduction reports whether the app runs in production mode.
// In development, error responses include stack traces.
func (c *Config) IsProduction() bool {
	return c.Global.Env == EnvProduction
}
