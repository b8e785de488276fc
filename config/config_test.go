package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Session.ExpirationHours)
	assert.Equal(t, "./data", cfg.Storage.Folder)
	assert.Equal(t, 500*time.Millisecond, cfg.Backend.Latency())
	assert.Equal(t, 300*time.Millisecond, cfg.Editor.SearchDebounce())
	assert.Equal(t, 2*time.Second, cfg.Editor.AutosaveDelay())
	assert.False(t, cfg.SSL.Enabled)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
port = 8080

[backend]
latency_ms = 0

[editor]
search_debounce_ms = 50
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Duration(0), cfg.Backend.Latency())
	assert.Equal(t, 50*time.Millisecond, cfg.Editor.SearchDebounce())

	// Sections absent from the file keep their defaults.
	assert.Equal(t, 2*time.Second, cfg.Editor.AutosaveDelay())
	assert.Equal(t, "./data", cfg.Storage.Folder)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateSSLRequiresCertAndKey(t *testing.T) {
	cfg := Default()
	cfg.SSL.Enabled = true

	err := cfg.ValidateSSL()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate")

	cfg.SSL.CertFile = "cert.pem"
	err = cfg.ValidateSSL()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")
}

func TestValidateSSLDisabledIsNoop(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.ValidateSSL())
}

func TestSecurityHeadersIncludeHSTSWhenEnabled(t *testing.T) {
	cfg := Default()
	headers := cfg.GetSecurityHeaders()
	_, ok := headers["Strict-Transport-Security"]
	assert.False(t, ok)

	cfg.SSL.Enabled = true
	cfg.SSL.Domain = "notes.example.com"
	headers = cfg.GetSecurityHeaders()
	assert.Contains(t, headers["Strict-Transport-Security"], "max-age=31536000")
}
