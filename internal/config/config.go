package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Backend       BackendConfig
	App           AppConfig
	JWT           JWTConfig
	Database      DatabaseConfig
	IdentityCache IdentityCacheConfig
	CLI           CLIConfig
}

// BackendConfig points at the recruitment backend.
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port         int
	Env          string
	LogLevel     string
	Timezone     string
	FrontendURLs []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

const (
	CacheDriverMemory   = "memory"
	CacheDriverPostgres = "postgres"
	CacheDriverSQLite   = "sqlite"
)

type IdentityCacheConfig struct {
	Driver        string
	TTL           time.Duration
	PurgeInterval time.Duration
}

// CLIConfig holds terminal client settings.
type CLIConfig struct {
	Home string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Backend configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		URL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8000"), "/"),
		Timeout: backendTimeout,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Timezone:     getEnv("APP_TIMEZONE", "Local"),
		FrontendURLs: getEnvSlice("FRONTEND_URLS"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "seeker_tracker"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Identity cache configuration
	cacheTTL, err := time.ParseDuration(getEnv("IDENTITY_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_CACHE_TTL: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("IDENTITY_CACHE_PURGE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_CACHE_PURGE_INTERVAL: %w", err)
	}

	config.IdentityCache = IdentityCacheConfig{
		Driver:        strings.ToLower(getEnv("IDENTITY_CACHE", CacheDriverMemory)),
		TTL:           cacheTTL,
		PurgeInterval: purgeInterval,
	}

	// Terminal client configuration
	home := getEnv("TRACKER_HOME", "")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		home = filepath.Join(userHome, ".seeker-tracker")
	}
	config.CLI = CLIConfig{Home: home}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks the settings shared by the gateway and the terminal client.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	switch c.IdentityCache.Driver {
	case CacheDriverMemory, CacheDriverPostgres, CacheDriverSQLite:
	default:
		return fmt.Errorf("IDENTITY_CACHE must be one of memory, postgres, sqlite")
	}
	if c.IdentityCache.TTL <= 0 {
		return fmt.Errorf("IDENTITY_CACHE_TTL must be positive")
	}
	if c.IdentityCache.PurgeInterval <= 0 {
		return fmt.Errorf("IDENTITY_CACHE_PURGE_INTERVAL must be positive")
	}
	return nil
}

// ValidateGateway checks what only the HTTP gateway needs.
func (c *Config) ValidateGateway() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.IdentityCache.Driver == CacheDriverPostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when IDENTITY_CACHE=postgres")
	}
	return nil
}

// Location returns the timezone that defines "today".
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || strings.EqualFold(c.App.Timezone, "Local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		url.QueryEscape(c.Database.Password),
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// DatabasePath returns the terminal client's sqlite file.
func (c *Config) DatabasePath(file string) string {
	return filepath.Join(c.CLI.Home, file)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
