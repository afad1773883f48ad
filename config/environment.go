package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Environment struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	AdminEmail    string
	AdminPassword string

	SessionSecret   string
	SessionTTL      time.Duration
	CleanupSchedule string

	IsDevelopment  bool
	Domain         string
	CookieSecure   bool
	AllowedOrigins []string
}

// LoadDotEnv reads .env unless running on Railway.
func LoadDotEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") != "" {
		return
	}
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using process environment", "error", err)
	}
}

// LoadEnvironment builds an Environment from process variables. Call
// Validate once any overrides are applied.
func LoadEnvironment() (Environment, error) {
	env := Environment{
		DatabaseURL:     os.Getenv("DB_URL"),
		DatabaseType:    getenv("DB_TYPE", DatabasePostgres),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		CleanupSchedule: getenv("SESSION_CLEANUP_SCHEDULE", "@every 1h"),
	}

	port, err := strconv.Atoi(getenv("PORT", "8080"))
	if err != nil || port <= 0 {
		return Environment{}, errors.New("invalid PORT env variable")
	}
	env.Port = port

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Environment{}, fmt.Errorf("invalid SESSION_TTL env variable %q", os.Getenv("SESSION_TTL"))
	}
	env.SessionTTL = ttl

	// No cookie domain means we're in development
	domain := os.Getenv("COOKIE_DOMAIN")
	env.IsDevelopment = domain == ""
	if env.IsDevelopment {
		domain = "localhost"
	}
	env.Domain = domain
	env.CookieSecure = !env.IsDevelopment

	for _, origin := range strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			env.AllowedOrigins = append(env.AllowedOrigins, origin)
		}
	}

	return env, nil
}

// Validate checks the settings the server cannot start without.
func (e Environment) Validate() error {
	switch {
	case e.DatabaseURL == "":
		return errors.New("DB_URL required")
	case e.DatabaseType != DatabasePostgres && e.DatabaseType != DatabaseSQLite:
		return fmt.Errorf("unsupported DB_TYPE %q (use postgres or sqlite)", e.DatabaseType)
	case e.AdminEmail == "" || e.AdminPassword == "":
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD required")
	case e.SessionSecret == "":
		return errors.New("SESSION_SECRET required")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
