package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, CatalogMock, cfg.CatalogSource)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.True(t, cfg.CSRFEnabled)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.False(t, cfg.NeedsDB())
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(env, []byte("SESSION_SECRET=from-file\nSTORE_DRIVER=redis\nREDIS_DB=2\n"), 0o600))

	// godotenv never overrides variables that exist, so the file-provided
	// ones must be unset; t.Setenv restores them afterwards.
	for _, key := range []string{"SESSION_SECRET", "STORE_DRIVER", "REDIS_DB"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://stylehub.example")

	cfg, err := Load(env)
	require.NoError(t, err)
	assert.Equal(t, []byte("from-file"), cfg.SessionSecret)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, []string{"https://stylehub.example"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	base := Config{SessionSecret: []byte("x"), CatalogSource: CatalogMock, StoreDriver: StoreMemory}
	require.NoError(t, base.Validate())

	c := base
	c.SessionSecret = nil
	assert.ErrorContains(t, c.Validate(), "SESSION_SECRET")

	c = base
	c.CatalogSource = CatalogDB
	assert.ErrorContains(t, c.Validate(), "DATABASE_URL")
	assert.True(t, c.NeedsDB())

	c = base
	c.CatalogSource = CatalogBackend
	err := c.Validate()
	assert.ErrorContains(t, err, "BACKEND_URL")
	assert.ErrorContains(t, err, "BACKEND_PROJECT_ID")

	c = base
	c.StoreDriver = "etcd"
	assert.ErrorContains(t, c.Validate(), "STORE_DRIVER")

	c = base
	c.CatalogSource = "csv"
	assert.ErrorContains(t, c.Validate(), "CATALOG_SOURCE")
}
