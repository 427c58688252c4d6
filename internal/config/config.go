package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Crypto  CryptoConfig
	GSP     GSPConfig
	Stores  StoresConfig
	Archive ArchiveConfig
	Cache   CacheConfig
	Log     LogConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds token validation settings for the suite-issued tokens.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// CryptoConfig holds the credential cipher settings.
type CryptoConfig struct {
	Secret string `mapstructure:"secret"`
}

// GSPConfig holds default GSP gateway settings.
type GSPConfig struct {
	DefaultProvider string `mapstructure:"default_provider"`
	BaseURL         string `mapstructure:"base_url"`
}

// StoresConfig holds the base URLs of the suite's collaborator services.
type StoresConfig struct {
	InvoiceBaseURL  string `mapstructure:"invoice_base_url"`
	PartyBaseURL    string `mapstructure:"party_base_url"`
	BusinessBaseURL string `mapstructure:"business_base_url"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
}

// ArchiveConfig holds the statement archive bucket settings. An empty bucket
// disables archival.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// CacheConfig holds report cache settings.
type CacheConfig struct {
	FreshnessWindow time.Duration `mapstructure:"freshness_window"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the GSTSUITE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTSUITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstsuite")
	v.SetDefault("db.password", "gstsuite_secret")
	v.SetDefault("db.name", "gstsuite_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "gstsuite")

	// Crypto defaults
	v.SetDefault("crypto.secret", "change-me-in-production")

	// GSP defaults
	v.SetDefault("gsp.default_provider", "mastergst")
	v.SetDefault("gsp.base_url", "")

	// Collaborator store defaults
	v.SetDefault("stores.invoice_base_url", "http://localhost:8081")
	v.SetDefault("stores.party_base_url", "http://localhost:8082")
	v.SetDefault("stores.business_base_url", "http://localhost:8083")
	v.SetDefault("stores.timeout_secs", 15)

	// Archive defaults (empty bucket disables statement archival)
	v.SetDefault("archive.region", "ap-south-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")

	// Cache defaults
	v.SetDefault("cache.freshness_window", "1h")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "GSTSUITE_SERVER_PORT",
		"server.read_timeout":      "GSTSUITE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "GSTSUITE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "GSTSUITE_SERVER_ENVIRONMENT",
		"db.host":                  "GSTSUITE_DB_HOST",
		"db.port":                  "GSTSUITE_DB_PORT",
		"db.user":                  "GSTSUITE_DB_USER",
		"db.password":              "GSTSUITE_DB_PASSWORD",
		"db.name":                  "GSTSUITE_DB_NAME",
		"db.sslmode":               "GSTSUITE_DB_SSLMODE",
		"db.max_open":              "GSTSUITE_DB_MAX_OPEN",
		"db.max_idle":              "GSTSUITE_DB_MAX_IDLE",
		"jwt.secret":               "GSTSUITE_JWT_SECRET",
		"jwt.issuer":               "GSTSUITE_JWT_ISSUER",
		"crypto.secret":            "GSTSUITE_CRYPTO_SECRET",
		"gsp.default_provider":     "GSTSUITE_GSP_DEFAULT_PROVIDER",
		"gsp.base_url":             "GSTSUITE_GSP_BASE_URL",
		"stores.invoice_base_url":  "GSTSUITE_STORES_INVOICE_BASE_URL",
		"stores.party_base_url":    "GSTSUITE_STORES_PARTY_BASE_URL",
		"stores.business_base_url": "GSTSUITE_STORES_BUSINESS_BASE_URL",
		"stores.timeout_secs":      "GSTSUITE_STORES_TIMEOUT_SECS",
		"archive.region":           "GSTSUITE_ARCHIVE_REGION",
		"archive.bucket":           "GSTSUITE_ARCHIVE_BUCKET",
		"archive.endpoint":         "GSTSUITE_ARCHIVE_ENDPOINT",
		"archive.access_key":       "GSTSUITE_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":       "GSTSUITE_ARCHIVE_SECRET_KEY",
		"cache.freshness_window":   "GSTSUITE_CACHE_FRESHNESS_WINDOW",
		"log.level":                "GSTSUITE_LOG_LEVEL",
		"log.format":               "GSTSUITE_LOG_FORMAT",
		"cors.allowed_origins":     "GSTSUITE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTSUITE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTSUITE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Crypto = CryptoConfig{
		Secret: v.GetString("crypto.secret"),
	}
	cfg.GSP = GSPConfig{
		DefaultProvider: v.GetString("gsp.default_provider"),
		BaseURL:         v.GetString("gsp.base_url"),
	}
	cfg.Stores = StoresConfig{
		InvoiceBaseURL:  v.GetString("stores.invoice_base_url"),
		PartyBaseURL:    v.GetString("stores.party_base_url"),
		BusinessBaseURL: v.GetString("stores.business_base_url"),
		TimeoutSecs:     v.GetInt("stores.timeout_secs"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Cache = CacheConfig{
		FreshnessWindow: v.GetDuration("cache.freshness_window"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
