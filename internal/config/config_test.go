package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_PORT", "CART_STORAGE", "KAFKA_BROKERS", "SESSION_TTL", "INCLUDE_ADDON_SURCHARGES", "DB_HOST"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageSQLite, cfg.CartStorage)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.IncludeAddOnSurcharges)
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CART_STORAGE", "Mongo")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("INCLUDE_ADDON_SURCHARGES", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, StorageMongo, cfg.CartStorage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.IncludeAddOnSurcharges)
	assert.True(t, cfg.Postgres.Enabled())
	assert.Equal(t, 5432, cfg.Postgres.Port)
}
