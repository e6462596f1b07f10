package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "TOKEN_TTL_HOURS", "BCRYPT_COST",
		"DATABASE_URL", "TEST_DATABASE_URL",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 3001, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Zero(t, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.S3Enabled())
	assert.Contains(t, cfg.DatabaseDSN, "/remix?")
}

func TestLoadConfig_TestEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("TEST_DATABASE_URL", "postgres://db/remix_test")
	t.Setenv("DATABASE_URL", "postgres://db/remix")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsTest())
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "postgres://db/remix_test", cfg.DatabaseDSN)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test ")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("S3_BUCKET_NAME", "images")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com/")
	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.S3Enabled())
	assert.Equal(t, "https://s3.example.com/images", cfg.S3PublicBaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad environment", map[string]string{"ENVIRONMENT": "staging"}},
		{"non numeric port", map[string]string{"PORT": "abc"}},
		{"privileged port", map[string]string{"PORT": "80"}},
		{"negative ttl", map[string]string{"TOKEN_TTL_HOURS": "-1"}},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "1"}},
		{"production without secret", map[string]string{"ENVIRONMENT": "production", "DATABASE_URL": "postgres://db"}},
		{"production without database", map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "s"}},
		{"partial s3", map[string]string{"S3_BUCKET_NAME": "images"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
