package config

import (
	"testing"

	"github.com/AdamBeresnev/padel-draw/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "padel_draw.db", cfg.DatabasePath)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Nil(t, cfg.ShuffleSeed)
	assert.True(t, cfg.RandomizeSeedGroups)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_PATH":         "/data/draw.db",
		"PORT":                  "9000",
		"SHUFFLE_SEED":          "42",
		"RANDOMIZE_SEED_GROUPS": "false",
		"CORS_ALLOWED_ORIGINS":  "https://club.example, https://admin.example ,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/data/draw.db", cfg.DatabasePath)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, int64(42), utils.OrZero(cfg.ShuffleSeed))
	assert.False(t, cfg.RandomizeSeedGroups)
	assert.Equal(t, []string{"https://club.example", "https://admin.example"}, cfg.AllowedOrigins)
}

func TestFromEnvInvalid(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{"port not a number", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"seed not a number", "SHUFFLE_SEED", "abc"},
		{"randomize not a bool", "RANDOMIZE_SEED_GROUPS", "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEnv(env(map[string]string{tc.key: tc.val}))
			assert.Error(t, err)
		})
	}
}
