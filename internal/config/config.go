// Package config loads process-wide configuration once at startup.
//
// Values come from, in order of precedence: real environment variables
// (prefix PORTAL_, dots replaced by underscores — PORTAL_AUTH_JWTSECRET sets
// auth.jwtsecret), an optional config.yaml in the working directory, and a
// .env file that fills in environment variables without overriding ones
// already set.
//
// The resulting Config is immutable by convention: it is built here, passed
// by pointer into the server, and never written to again. The token signing
// secret in particular is validated up front — a portal that cannot sign
// verifiable tokens must refuse to start rather than limp along.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application-level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Port int
	}
	Database struct {
		Path string
	}
	Web struct {
		TemplateDir string
		StaticDir   string
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	Assistant struct {
		BaseURL string
		APIKey  string
		Model   string
	}
}

// Load reads configuration from environment variables and optional config files.
//
// It fails when the JWT secret is absent or too short; everything else has
// a workable default.
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "data/portal.db")
	v.SetDefault("web.templatedir", "web/templates")
	v.SetDefault("web.staticdir", "web/static")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", "168h") // 7 days, same as the token the frontend expects
	v.SetDefault("auth.bcryptcost", 12)
	v.SetDefault("assistant.baseurl", "https://api.openai.com/v1")
	v.SetDefault("assistant.apikey", "")
	v.SetDefault("assistant.model", "gpt-3.5-turbo")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("config: PORTAL_AUTH_JWTSECRET is required (try: openssl rand -hex 32)")
	}
	if len(cfg.Auth.JWTSecret) < 16 {
		return nil, errors.New("config: PORTAL_AUTH_JWTSECRET must be at least 16 characters")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return nil, errors.New("config: auth.tokenttl must be positive")
	}

	return &cfg, nil
}

// loadDotEnv populates the environment from a .env file, if present.
// Existing environment variables always win.
func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
