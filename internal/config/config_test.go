package config

import (
	"testing"
	"time"

	"donation-desk/internal/core/domain"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, RevocationDriverMemory, cfg.Revocation.Driver)
	assert.Equal(t, "adminToken", cfg.Cookie.Name)
	assert.Equal(t, "strict", cfg.Cookie.SameSite)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, domain.DefaultRequiredFields, cfg.Donation.RequiredFields)
	assert.Empty(t, cfg.Backup.Schedule)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("JWT_EXPIRY_HOURS", "12")
	t.Setenv("STORAGE_DRIVER", "MySQL")
	t.Setenv("REVOCATION_DRIVER", "redis")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DONATION_REQUIRED_FIELDS", " fullName , email,fullName ")
	t.Setenv("ALLOWED_ORIGINS", "https://donate.example.org")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, StorageDriverMySQL, cfg.Storage.Driver)
	assert.Equal(t, RevocationDriverRedis, cfg.Revocation.Driver)
	assert.True(t, cfg.Cookie.Secure)
	assert.Equal(t, []string{"fullName", "email"}, cfg.Donation.RequiredFields)
	assert.Equal(t, "https://donate.example.org", cfg.GetAllowedOrigins())
}

func TestLoadFrom_NoRequiredFields(t *testing.T) {
	t.Setenv("DONATION_REQUIRED_FIELDS", "none")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Empty(t, cfg.Donation.RequiredFields)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad mode", env: map[string]string{"APP_MODE": "staging"}},
		{name: "default secret in prod", env: map[string]string{"APP_MODE": "prod"}},
		{name: "unknown storage", env: map[string]string{"STORAGE_DRIVER": "mongo"}},
		{name: "unknown revocation", env: map[string]string{"REVOCATION_DRIVER": "etcd"}},
		{name: "bad samesite", env: map[string]string{"COOKIE_SAMESITE": "sometimes"}},
		{name: "zero expiry", env: map[string]string{"JWT_EXPIRY_HOURS": "0"}},
		{name: "unknown required field", env: map[string]string{"DONATION_REQUIRED_FIELDS": "fullName,iban"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{Host: "db", Port: "3306", User: "u", Password: "p", DBName: "donations"})
	assert.Equal(t, "u:p@tcp(db:3306)/donations?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}
