package bridgecfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 30*time.Second, cfg.Misp.Timeout)
	assert.Equal(t, "misp-mcp", cfg.Misp.UserAgent)
	assert.Equal(t, "127.0.0.1:8750", cfg.ListenURI)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "stdout", cfg.LogMedia)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Prometheus)
}

func TestNewConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
misp:
  url: https://misp.example.org
  api_key: s3cret
  timeout: 10s
listen_uri: 0.0.0.0:9000
log_level: debug
prometheus: true
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://misp.example.org", cfg.Misp.URL)
	assert.Equal(t, "s3cret", cfg.Misp.APIKey.String())
	assert.Equal(t, 10*time.Second, cfg.Misp.Timeout)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenURI)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Prometheus)

	// untouched keys keep their defaults
	assert.Equal(t, "misp-mcp", cfg.Misp.UserAgent)
	assert.Equal(t, "stdout", cfg.LogMedia)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	cstest.RequireErrorContains(t, err, "while reading")
}

func TestNewConfigUnknownKey(t *testing.T) {
	path := writeConfigFile(t, `
misp:
  url: https://misp.example.org
  api_key: s3cret
tyop: true
`)

	_, err := NewConfig(path)
	cstest.RequireErrorContains(t, err, "while parsing")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectedErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:        "missing url",
			modify:      func(cfg *Config) { cfg.Misp.URL = "" },
			expectedErr: "misp.url is not set",
		},
		{
			name:        "missing api key",
			modify:      func(cfg *Config) { cfg.Misp.APIKey = "" },
			expectedErr: "misp.api_key is not set",
		},
		{
			name:        "bad log level",
			modify:      func(cfg *Config) { cfg.LogLevel = "shouting" },
			expectedErr: "log_level",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Misp.URL = "https://misp.example.org"
			cfg.Misp.APIKey = "s3cret"
			tc.modify(cfg)

			err := cfg.Validate()
			cstest.RequireErrorContains(t, err, tc.expectedErr)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
misp:
  url: https://from-file.example.org
  api_key: file-key
`)

	t.Setenv("MISP_URL", "https://from-env.example.org")
	t.Setenv("MISP_API_KEY", "env-key")
	t.Setenv("MISP_VERIFY_SSL", "false")

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.org", cfg.Misp.URL)
	assert.Equal(t, "env-key", cfg.Misp.APIKey.String())
	assert.True(t, cfg.Misp.InsecureSkipVerify)
}

func TestEnvVerifySSLEnabled(t *testing.T) {
	t.Setenv("MISP_URL", "https://misp.example.org")
	t.Setenv("MISP_API_KEY", "s3cret")
	t.Setenv("MISP_VERIFY_SSL", "true")

	cfg, err := NewConfig("")
	require.NoError(t, err)

	assert.False(t, cfg.Misp.InsecureSkipVerify)
}

func TestAPIClientConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Misp.URL = "https://misp.example.org/misp"
	cfg.Misp.APIKey = "s3cret"

	clientCfg, err := cfg.APIClientConfig()
	require.NoError(t, err)

	// the trailing slash keeps the path prefix when routes are resolved
	assert.Equal(t, "https://misp.example.org/misp/", clientCfg.URL.String())
	assert.Equal(t, "s3cret", clientCfg.APIKey.String())
	assert.Equal(t, 30*time.Second, clientCfg.Timeout)
}
