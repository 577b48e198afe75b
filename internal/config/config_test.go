package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("PORT", "8080")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "app")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("GO_ENV", "test")
	t.Setenv("API_DOMAIN", "localhost")
	t.Setenv("FE_URL", "http://localhost:3000")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, "http://localhost:3000", cfg.FEURL)
	// REDIS_ADDRは未設定でもエラーにならない
	assert.Equal(t, "", cfg.RedisAddr)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_BadPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := Load()

	assert.Error(t, err)
}
