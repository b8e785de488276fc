package config

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type ServerConfig struct {
	Port int `toml:"port"`
}

type SessionConfig struct {
	Secret          string `toml:"secret"`           // For JWT signing
	ExpirationHours int    `toml:"expiration_hours"` // Session cookie lifetime
}

type StorageConfig struct {
	Folder string `toml:"folder"` // Data directory for the bolt database
}

// BackendConfig tunes the simulated backend. Latency applies to login,
// register and session restore; the stub itself never fails.
type BackendConfig struct {
	LatencyMs int `toml:"latency_ms"`
}

// EditorConfig tunes the timer policies behind search and autosave.
type EditorConfig struct {
	SearchDebounceMs int `toml:"search_debounce_ms"`
	AutosaveDelayMs  int `toml:"autosave_delay_ms"`
	ImageMaxWidth    int `toml:"image_max_width"`
}

type SSLConfig struct {
	Enabled      bool   `toml:"enabled"`
	CertFile     string `toml:"cert_file"`
	KeyFile      string `toml:"key_file"`
	Port         int    `toml:"port"`
	Domain       string `toml:"domain"`
	HSTSMaxAge   int    `toml:"hsts_max_age"`
	AutoRedirect bool   `toml:"auto_redirect"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Session SessionConfig `toml:"session"`
	Storage StorageConfig `toml:"storage"`
	Backend BackendConfig `toml:"backend"`
	Editor  EditorConfig  `toml:"editor"`
	SSL     SSLConfig     `toml:"ssl"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var config Config

	config.Server.Port = 3000
	config.Session.ExpirationHours = 24
	config.Storage.Folder = "./data"
	config.Backend.LatencyMs = 500
	config.Editor.SearchDebounceMs = 300
	config.Editor.AutosaveDelayMs = 2000
	config.Editor.ImageMaxWidth = 1200
	config.SSL.Port = 443
	config.SSL.HSTSMaxAge = 31536000 // 1 year
	config.SSL.AutoRedirect = true

	return &config
}

// LoadConfig reads the TOML config file, applying defaults first. A
// missing file is not an error; the defaults stand.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	if _, err := toml.DecodeFile(filepath, config); err != nil {
		return nil, err
	}

	if config.SSL.Enabled {
		if err := config.ValidateSSL(); err != nil {
			return nil, fmt.Errorf("SSL configuration error: %w", err)
		}
	}

	return config, nil
}

// Latency returns the simulated backend latency as a duration.
func (c *BackendConfig) Latency() time.Duration {
	return time.Duration(c.LatencyMs) * time.Millisecond
}

// SearchDebounce returns the search coalescing window.
func (c *EditorConfig) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMs) * time.Millisecond
}

// AutosaveDelay returns the dirty-to-commit autosave delay.
func (c *EditorConfig) AutosaveDelay() time.Duration {
	return time.Duration(c.AutosaveDelayMs) * time.Millisecond
}

// ValidateSSL checks if the SSL configuration is valid
func (c *Config) ValidateSSL() error {
	if !c.SSL.Enabled {
		return nil
	}

	if c.SSL.CertFile == "" {
		return fmt.Errorf("SSL certificate file path is required")
	}

	if c.SSL.KeyFile == "" {
		return fmt.Errorf("SSL key file path is required")
	}

	// Try loading the certificates to verify they're valid
	if _, err := tls.LoadX509KeyPair(c.SSL.CertFile, c.SSL.KeyFile); err != nil {
		return fmt.Errorf("failed to load SSL certificates: %w", err)
	}

	return nil
}

// GetSecurityHeaders returns a map of security headers based on the configuration
func (c *Config) GetSecurityHeaders() map[string]string {
	headers := make(map[string]string)

	if c.SSL.Enabled {
		if c.SSL.Domain != "" {
			headers["Strict-Transport-Security"] = fmt.Sprintf("max-age=%d; includeSubDomains", c.SSL.HSTSMaxAge)
		}
		headers["X-Content-Type-Options"] = "nosniff"
		headers["X-Frame-Options"] = "SAMEORIGIN"
		headers["Referrer-Policy"] = "strict-origin-when-cross-origin"
	}

	return headers
}
