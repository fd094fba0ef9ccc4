package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONTENTHUB_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, 100, cfg.APIListLimitMax)
	assert.Equal(t, 480, cfg.TokenTTLMinutes)
	assert.Equal(t, "default", cfg.Source("port"))
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
port: 3000
environment: production
allowed_origin: https://app.example.org
api_list_limit_max: 50
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))
	t.Setenv("CONTENTHUB_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "https://app.example.org", cfg.AllowedOrigin)
	assert.Equal(t, 50, cfg.APIListLimitMax)
	assert.Equal(t, "file", cfg.Source("port"))
	assert.Equal(t, "default", cfg.Source("bind_address"))
	assert.False(t, cfg.IsDevelopment())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: 3000\n"), 0o600))
	t.Setenv("CONTENTHUB_CONFIG_PATH", dir)
	t.Setenv("PORT", "9090")
	t.Setenv("CONTENTHUB_ALLOWED_ORIGIN", "https://other.example.org")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.Equal(t, "https://other.example.org", cfg.AllowedOrigin)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("CONTENTHUB_CONFIG_PATH", t.TempDir())
	t.Setenv("CONTENTHUB_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [oops\n"), 0o600))
	t.Setenv("CONTENTHUB_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := newDefault()
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = newDefault()
	cfg.APIListLimitMax = -1
	assert.Error(t, cfg.Validate())
}

func TestAttributes(t *testing.T) {
	t.Setenv("CONTENTHUB_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	attrs := cfg.Attributes()
	require.Len(t, attrs, 6)

	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	assert.Equal(t, attributeNames(), names)
}
