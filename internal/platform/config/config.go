// Package config loads process-wide configuration from the environment (and an
// optional .env file) exactly once at startup. Nothing here mutates after Load.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at process start.
type Config struct {
	HTTPPort string

	// Backend targets (spec.md §6 env/config)
	ServerIP       string
	PaaSURL        string
	PaaSAPIToken   string
	DNSURL         string
	DNSAPIKey      string
	BaseDomain     string
	ServerUUID     string
	DefaultGitRepo string

	// Deployment pipeline tuning
	WaitReadyInterval time.Duration
	WaitReadyBudget   time.Duration
	WaitReadyPollTimeout time.Duration

	// Local executor / reverse proxy
	ProxySitesDir  string
	ProxyReloadCmd string
	ContainerConfigDir string
	LogDir         string
	TmpDir         string

	Database DatabaseConfig
}

// DatabaseConfig holds the audit store's connection configuration.
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Load reads an optional .env file from the repository root, then layers
// environment variables (with defaults) on top.
func Load() (*Config, error) {
	root := findModuleRoot()
	envPath := filepath.Join(root, ".env")

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		ServerIP:       getEnv("SERVER_IP", "127.0.0.1"),
		PaaSURL:        getEnv("PAAS_URL", "http://localhost:8000"),
		PaaSAPIToken:   getEnv("PAAS_API_TOKEN", ""),
		DNSURL:         getEnv("DNS_URL", "http://localhost:8081"),
		DNSAPIKey:      getEnv("DNS_API_KEY", ""),
		BaseDomain:     getEnv("BASE_DOMAIN", "apps.example.com"),
		ServerUUID:     getEnv("SERVER_UUID", ""),
		DefaultGitRepo: getEnv("DEFAULT_GIT_REPO", "https://github.com/deployhub/hello-world.git"),

		WaitReadyInterval:    getEnvDuration("WAIT_READY_INTERVAL", 15*time.Second),
		WaitReadyBudget:      getEnvDuration("WAIT_READY_BUDGET", 8*time.Minute),
		WaitReadyPollTimeout: getEnvDuration("WAIT_READY_POLL_TIMEOUT", 30*time.Second),

		ProxySitesDir:      getEnv("PROXY_SITES_DIR", "/etc/caddy/sites"),
		ProxyReloadCmd:     getEnv("PROXY_RELOAD_CMD", "systemctl reload caddy"),
		ContainerConfigDir: getEnv("CONTAINER_CONFIG_DIR", "/etc/deployhub/containers"),
		LogDir:             getEnv("LOG_DIR", "log"),
		TmpDir:             getEnv("TMP_DIR", "/tmp/deployhub"),

		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "deployhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	return cfg, nil
}

// GetDSN returns the PostgreSQL connection string for the audit store.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// findModuleRoot walks up from the working directory looking for go.mod.
func findModuleRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
