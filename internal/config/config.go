package config

import (
	"fmt"
	"strings"
	"time"

	"donation-desk/internal/core/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only acceptable in dev mode
const DefaultJWTSecret = "default_secret"

// Storage and revocation drivers
const (
	StorageDriverFile  = "file"
	StorageDriverMySQL = "mysql"

	RevocationDriverMemory = "memory"
	RevocationDriverRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	AllowedOrigins string
	RateLimitMax   int
	Storage        StorageConfig
	Database       DatabaseConfig
	JWT            JWTConfig
	Cookie         CookieConfig
	Admin          AdminConfig
	Revocation     RevocationConfig
	Redis          RedisConfig
	Log            LogConfig
	Donation       DonationConfig
	Backup         BackupConfig
}

// StorageConfig selects where donations and admins are kept
type StorageConfig struct {
	Driver  string
	DataDir string
}

// DatabaseConfig holds database configuration for the mysql driver
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// Expiry returns the session lifetime
func (j JWTConfig) Expiry() time.Duration {
	return time.Duration(j.ExpiryHours) * time.Hour
}

// CookieConfig holds session cookie configuration
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
	Domain   string
}

// AdminConfig is the credential seeded when no admin exists
type AdminConfig struct {
	Email    string
	Password string
}

// RevocationConfig selects the revoked-token store
type RevocationConfig struct {
	Driver string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// DonationConfig holds submission rules
type DonationConfig struct {
	RequiredFields []string
}

// BackupConfig holds the snapshot schedule. An empty schedule disables it.
type BackupConfig struct {
	Schedule string
	Dir      string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	return LoadFrom(viper.New())
}

// LoadFrom resolves configuration through v, applying defaults and
// reading environment variables
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	appMode := strings.TrimSpace(v.GetString("APP_MODE"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	required, err := parseRequiredFields(v.GetString("DONATION_REQUIRED_FIELDS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppMode:        appMode,
		Port:           v.GetString("PORT"),
		AllowedOrigins: strings.TrimSpace(v.GetString("ALLOWED_ORIGINS")),
		RateLimitMax:   v.GetInt("RATE_LIMIT_MAX"),
		Storage: StorageConfig{
			Driver:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
			DataDir: v.GetString("DATA_DIR"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			DBName:   v.GetString("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Cookie: CookieConfig{
			Name:     v.GetString("COOKIE_NAME"),
			Secure:   v.GetBool("COOKIE_SECURE"),
			SameSite: strings.ToLower(v.GetString("COOKIE_SAMESITE")),
			Domain:   v.GetString("COOKIE_DOMAIN"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
		Revocation: RevocationConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("REVOCATION_DRIVER"))),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Donation: DonationConfig{RequiredFields: required},
		Backup: BackupConfig{
			Schedule: strings.TrimSpace(v.GetString("BACKUP_SCHEDULE")),
			Dir:      v.GetString("BACKUP_DIR"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", "dev")
	v.SetDefault("PORT", "3000")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("STORAGE_DRIVER", StorageDriverFile)
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "donations")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_HOURS", 168)
	v.SetDefault("COOKIE_NAME", "adminToken")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAMESITE", "strict")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("REVOCATION_DRIVER", RevocationDriverMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DONATION_REQUIRED_FIELDS", strings.Join(domain.DefaultRequiredFields, ","))
	v.SetDefault("BACKUP_SCHEDULE", "")
	v.SetDefault("BACKUP_DIR", "./backups")
	v.SetDefault("ALLOWED_ORIGINS", "")
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverMySQL:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Revocation.Driver {
	case RevocationDriverMemory, RevocationDriverRedis:
	default:
		return fmt.Errorf("unknown REVOCATION_DRIVER %q", c.Revocation.Driver)
	}

	switch c.Cookie.SameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("COOKIE_SAMESITE must be strict, lax or none")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.IsProd() && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in prod mode")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	if c.Cookie.Name == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must not be empty")
	}
	return nil
}

// parseRequiredFields splits a comma-separated field list, rejecting names
// that are not donation fields. "none" yields an empty set.
func parseRequiredFields(raw string) ([]string, error) {
	fields := make([]string, 0)
	if strings.EqualFold(strings.TrimSpace(raw), "none") {
		return fields, nil
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		if !domain.IsDonationField(name) {
			return nil, fmt.Errorf("DONATION_REQUIRED_FIELDS: unknown field %q", name)
		}
		seen[name] = true
		fields = append(fields, name)
	}
	return fields, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return ""
	}
	return c.AllowedOrigins
}
