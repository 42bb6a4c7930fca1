package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all runtime configuration. It is built once in main and
// injected into the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	ServerPort  int
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	BcryptCost int

	// General API traffic, enforced in-process per client IP.
	RateLimitPerMinute int
	RateLimitBurst     int

	// Auth endpoints, enforced against the counter table.
	LoginLimitPerMinute    int
	RegisterLimitPerMinute int

	LogLevel string
}

// Load reads the .env file specified by CAPTUREDESK_ENV (or .env by default),
// then the corresponding .secret sidecar if it exists, and returns the
// resulting configuration.
func Load() (*Config, error) {
	envFile := os.Getenv("CAPTUREDESK_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the process env may carry everything.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	cfg := &Config{
		ServerPort:             intEnv("SERVER_PORT", 8080),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		TokenTTL:               time.Duration(intEnv("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:             intEnv("BCRYPT_COST", 10),
		RateLimitPerMinute:     intEnv("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:         intEnv("RATE_LIMIT_BURST", 20),
		LoginLimitPerMinute:    intEnv("LOGIN_LIMIT_PER_MINUTE", 10),
		RegisterLimitPerMinute: intEnv("REGISTER_LIMIT_PER_MINUTE", 5),
		LogLevel:               stringEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// ZapLevel parses LogLevel, falling back to info on unknown values.
func (c *Config) ZapLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func intEnv(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func stringEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
