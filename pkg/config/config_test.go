package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 70, cfg.Dedup.AutoMergeThreshold)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPASSWORD", "sekret")
	t.Setenv("DEDUP_AUTO_MERGE_THRESHOLD", "55")

	cfg, err := Load("dev")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "sekret", cfg.Database.Password)
	assert.Equal(t, 55, cfg.Dedup.AutoMergeThreshold)
}

func TestLoadRejectsInvalidThreshold(t *testing.T) {
	t.Setenv("DEDUP_AUTO_MERGE_THRESHOLD", "150")

	_, err := Load("dev")
	assert.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "glenigan",
		Password: "pw", Database: "glenigan", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=glenigan password=pw dbname=glenigan sslmode=disable",
		cfg.ConnectionString())
}
