// Package config reads service settings from the environment, after loading
// a local .env file when one exists.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	GinMode         string
	CredentialsFile string
	ProjectID       string
	StorageBucket   string
	JWTSecret       string
	SessionTTL      time.Duration
	GeminiAPIKey    string
	GeminiModel     string
	CORSOrigins     []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("CORS_ORIGINS", "*")
}

// Load returns the settings for the serve and seed commands. A missing .env
// file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the process environment")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
		StorageBucket:   v.GetString("FIREBASE_STORAGE_BUCKET"),
		JWTSecret:       v.GetString("JWT_SECRET_KEY"),
		SessionTTL:      v.GetDuration("SESSION_TTL"),
		GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
		GeminiModel:     v.GetString("GEMINI_MODEL"),
	}
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %q", v.GetString("SESSION_TTL"))
	}
	return cfg, nil
}

// Validate checks what the HTTP server needs beyond the store settings.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return c.ValidateStore()
}

func (c *Config) ValidateStore() error {
	if c.CredentialsFile == "" {
		return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	if c.StorageBucket == "" {
		return fmt.Errorf("FIREBASE_STORAGE_BUCKET is not set")
	}
	return nil
}
