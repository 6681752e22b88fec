package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewConfigWithJSON(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{
		"server_address": "json:8080",
		"grpc_address": "json:3200",
		"sender_address": "Dub <json@dub.co>",
		"worker_count": 6
	}`)
	resetFlags(t, "-c", path)

	cfg := NewConfig()

	assert.Equal(t, "json:8080", cfg.ServerAddress)
	assert.Equal(t, "json:3200", cfg.GRPCAddress)
	assert.Equal(t, "Dub <json@dub.co>", cfg.SenderAddress)
	assert.Equal(t, 6, cfg.WorkerCount)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestNewConfigJSONPriority(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"server_address": "json:8080", "log_level": "warn", "grpc_address": "json:3200"}`)

	t.Setenv("SERVER_ADDRESS", "env:8080")
	resetFlags(t, "-c", path, "-a", "flag:8080", "-l", "debug")

	cfg := NewConfig()

	assert.Equal(t, "env:8080", cfg.ServerAddress)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json:3200", cfg.GRPCAddress)
}

func TestNewConfigJSONFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{"database_dsn": "postgres://json"}`)
	t.Setenv("CONFIG", path)
	resetFlags(t)

	cfg := NewConfig()

	assert.Equal(t, "postgres://json", cfg.DatabaseDSN)
}

func TestNewConfigMissingJSONFile(t *testing.T) {
	clearEnv(t)
	resetFlags(t, "-c", filepath.Join(t.TempDir(), "missing.json"))

	cfg := NewConfig()

	assert.Equal(t, ":8080", cfg.ServerAddress)
}
