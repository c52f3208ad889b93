package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GO_ENV", "LOG_LEVEL", "STORAGE_DRIVER", "DATABASE_URL",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST",
		"POSTGRES_PORT", "POSTGRES_SSLMODE", "DB_AUTO_MIGRATE", "JWT_SECRET",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.True(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "order.created", cfg.KafkaTopic)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=marketplace sslmode=disable",
		cfg.PostgresDSN(),
	)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9000")
	t.Setenv("GO_ENV", "prod")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shop")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "postgres://u:p@db:5432/shop", cfg.PostgresDSN())
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad port":    {"POSTGRES_PORT", "abc"},
		"zero port":   {"POSTGRES_PORT", "0"},
		"bad bool":    {"DB_AUTO_MIGRATE", "maybe"},
		"bad storage": {"STORAGE_DRIVER", "mysql"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
