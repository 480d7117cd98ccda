package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, notes, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "English", cfg.AI.Language)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "resumes", cfg.Storage.MinIO.Bucket)
	assert.Len(t, notes, 2)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "app:\n  port: \"8080\"\nai:\n  language: Portuguese\n  timeout: 5s\nredis:\n  addr: localhost:6379\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("AI_SERVICE_URL", "http://gateway:9000")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, _, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "Portuguese", cfg.AI.Language)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "http://gateway:9000", cfg.AI.BaseURL)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
}
