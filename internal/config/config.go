package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	Port              int           `mapstructure:"PORT"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	GinMode           string        `mapstructure:"GIN_MODE"`
	DefaultCategories string        `mapstructure:"DEFAULT_CATEGORIES"`
}

// Categories splits DefaultCategories into trimmed, non-empty names.
func (c Config) Categories() []string {
	var names []string
	for _, part := range strings.Split(c.DefaultCategories, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadConfig loads the configuration from a .env file in dir and environment variables.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("JWT_TTL", 7*24*time.Hour)
	v.SetDefault("DEFAULT_CATEGORIES", "icebreaker,group,word,physical")
	// Keys that only exist in the environment still need a default to be unmarshalled.
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	return &cfg, nil
}
