// Package bridgecfg holds the startup configuration: where the MISP instance
// lives, how to authenticate against it, and how the tool server itself runs.
// Everything here is established once at process start and never mutated.
package bridgecfg

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"github.com/solomonneas/misp-mcp/pkg/apiclient"
)

type MispCfg struct {
	URL                string          `yaml:"url"`
	APIKey             strfmt.Password `yaml:"api_key"`
	Timeout            time.Duration   `yaml:"timeout,omitempty"`
	InsecureSkipVerify bool            `yaml:"insecure_skip_verify,omitempty"`
	UserAgent          string          `yaml:"user_agent,omitempty"`
}

type Config struct {
	Misp       MispCfg `yaml:"misp"`
	ListenURI  string  `yaml:"listen_uri,omitempty"`
	LogLevel   string  `yaml:"log_level,omitempty"`
	LogMedia   string  `yaml:"log_media,omitempty"`
	LogDir     string  `yaml:"log_dir,omitempty"`
	LogFormat  string  `yaml:"log_format,omitempty"`
	Prometheus bool    `yaml:"prometheus,omitempty"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Misp: MispCfg{
			Timeout:   apiclient.DefaultTimeout,
			UserAgent: "misp-mcp",
		},
		ListenURI: "127.0.0.1:8750",
		LogLevel:  "info",
		LogMedia:  "stdout",
		LogFormat: "text",
	}
}

// NewConfig loads defaults, overrides them from the optional yaml file, then
// from the environment (MISP_URL, MISP_API_KEY, MISP_VERIFY_SSL). Missing
// required values are a fatal startup condition, reported by Validate.
func NewConfig(configFile string) (*Config, error) {
	cfg := NewDefaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("while reading %s: %w", configFile, err)
		}

		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("while parsing %s: %w", configFile, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MISP_URL"); v != "" {
		c.Misp.URL = v
	}

	if v := os.Getenv("MISP_API_KEY"); v != "" {
		c.Misp.APIKey = strfmt.Password(v)
	}

	if v := os.Getenv("MISP_VERIFY_SSL"); v != "" {
		c.Misp.InsecureSkipVerify = strings.EqualFold(v, "false") || v == "0"
	}
}

func (c *Config) Validate() error {
	if c.Misp.URL == "" {
		return fmt.Errorf("misp.url is not set (config file or MISP_URL)")
	}

	if c.Misp.APIKey == "" {
		return fmt.Errorf("misp.api_key is not set (config file or MISP_API_KEY)")
	}

	if _, err := url.Parse(c.Misp.URL); err != nil {
		return fmt.Errorf("misp.url: %w", err)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// APIClientConfig translates the startup configuration into the client's
// Config. The base URL always gets a trailing slash so relative route parsing
// keeps the path prefix.
func (c *Config) APIClientConfig() (*apiclient.Config, error) {
	rawURL := c.Misp.URL
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}

	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("misp.url: %w", err)
	}

	return &apiclient.Config{
		URL:                baseURL,
		APIKey:             c.Misp.APIKey,
		UserAgent:          c.Misp.UserAgent,
		Timeout:            c.Misp.Timeout,
		InsecureSkipVerify: c.Misp.InsecureSkipVerify,
	}, nil
}
