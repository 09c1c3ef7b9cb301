package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "medium", cfg.Generator.Scale)
	assert.Equal(t, 20, cfg.Generator.FieldsPerSector)
	assert.InDelta(t, 0.15, cfg.Generator.DetourProbability, 1e-9)
	assert.InDelta(t, 0.70, cfg.Generator.AxisBias, 1e-9)
	assert.Equal(t, 10*time.Minute, cfg.Redis.LockTTL)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GALAXY_SEED", "andromeda")
	t.Setenv("GALAXY_SCALE", "large")
	t.Setenv("GALAXY_STORE", "memory")
	t.Setenv("HYPERLANE_DETOUR_PROBABILITY", "0.3")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "andromeda", cfg.Generator.Seed)
	assert.Equal(t, "large", cfg.Generator.Scale)
	assert.Equal(t, "memory", cfg.Generator.Store)
	assert.InDelta(t, 0.3, cfg.Generator.DetourProbability, 1e-9)
	assert.True(t, cfg.Logging.JSONFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown scale", "GALAXY_SCALE", "huge"},
		{"unknown store", "GALAXY_STORE", "sqlite"},
		{"tiny sectors", "GALAXY_FIELDS_PER_SECTOR", "3"},
		{"detour above one", "HYPERLANE_DETOUR_PROBABILITY", "1.5"},
		{"negative bias", "HYPERLANE_AXIS_BIAS", "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5433", User: "u", Password: "p", Name: "galaxy", SSLMode: "disable",
	}}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=galaxy sslmode=disable", cfg.ConnectionString())
}
