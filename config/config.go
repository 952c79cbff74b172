// Package config loads the settings that drive transport selection and
// endpoint addressing: the configured transport mode, the platform streaming
// capability, request timeout, and the named endpoints calls are issued
// against.
//
// Settings come from a YAML file with environment-variable overrides
// (AIWIRE_TRANSPORT_MODE, AIWIRE_TIMEOUT_SECONDS). API keys are never stored
// in the file; each endpoint names the environment variable holding its key.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/leofalp/aiwire/transport"
)

// Environment overrides applied after the file is read.
const (
	EnvTransportMode  = "AIWIRE_TRANSPORT_MODE"
	EnvTimeoutSeconds = "AIWIRE_TIMEOUT_SECONDS"
)

// Config is the root settings document.
type Config struct {
	Transport TransportSettings  `yaml:"transport"`
	Endpoints []EndpointSettings `yaml:"endpoints"`
}

// TransportSettings controls the selector.
type TransportSettings struct {
	// Mode is auto, native, or buffered. Empty means auto.
	Mode string `yaml:"mode"`
	// Streaming reports whether the platform has access to the raw
	// streaming primitive. Nil means yes.
	Streaming *bool `yaml:"streaming"`
	// TimeoutSeconds bounds each attempt. Zero means no client timeout;
	// callers may still set context deadlines.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// EndpointSettings describes one named endpoint.
type EndpointSettings struct {
	Name           string `yaml:"name"`
	BaseURL        string `yaml:"base_url"`
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
	// APIKeyEnv names the environment variable holding the key.
	APIKeyEnv string `yaml:"api_key_env"`
}

// APIKey resolves the endpoint's key from the environment; empty when the
// endpoint needs none (local servers).
func (e *EndpointSettings) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

// Default returns the zero-file configuration: auto mode, streaming enabled,
// no endpoints.
func Default() Config {
	return Config{Transport: TransportSettings{Mode: string(transport.ModeAuto)}}
}

// Load reads a YAML settings file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes, overrides, and validates config bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}

	if mode := os.Getenv(EnvTransportMode); mode != "" {
		cfg.Transport.Mode = mode
	}
	if timeout := os.Getenv(EnvTimeoutSeconds); timeout != "" {
		seconds := 0
		if _, err := fmt.Sscanf(timeout, "%d", &seconds); err != nil || seconds < 0 {
			return nil, fmt.Errorf("config: invalid %s value %q", EnvTimeoutSeconds, timeout)
		}
		cfg.Transport.TimeoutSeconds = seconds
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for i, ep := range c.Endpoints {
		if ep.Name == "" {
			return fmt.Errorf("config: endpoint %d has no name", i)
		}
		if ep.BaseURL == "" {
			return fmt.Errorf("config: endpoint %q has no base_url", ep.Name)
		}
		if _, dup := seen[ep.Name]; dup {
			return fmt.Errorf("config: duplicate endpoint name %q", ep.Name)
		}
		seen[ep.Name] = struct{}{}
	}
	return nil
}

// Mode returns the validated transport mode.
func (c *Config) Mode() (transport.Mode, error) {
	switch transport.Mode(c.Transport.Mode) {
	case transport.ModeAuto, "":
		return transport.ModeAuto, nil
	case transport.ModeNative:
		return transport.ModeNative, nil
	case transport.ModeBuffered:
		return transport.ModeBuffered, nil
	}
	return "", fmt.Errorf("config: unknown transport mode %q (want auto, native, or buffered)", c.Transport.Mode)
}

// Endpoint finds a named endpoint.
func (c *Config) Endpoint(name string) (*EndpointSettings, error) {
	for i := range c.Endpoints {
		if c.Endpoints[i].Name == name {
			return &c.Endpoints[i], nil
		}
	}
	return nil, fmt.Errorf("config: no endpoint named %q", name)
}

// Selector builds a transport selector honoring the settings. The config has
// already been validated, so an invalid mode cannot reach here.
func (c *Config) Selector() *transport.Selector {
	client := &http.Client{}
	if c.Transport.TimeoutSeconds > 0 {
		client.Timeout = time.Duration(c.Transport.TimeoutSeconds) * time.Second
	}

	mode, _ := c.Mode()
	streaming := c.Transport.Streaming == nil || *c.Transport.Streaming

	return transport.NewSelector(client).
		WithMode(mode).
		WithCapabilities(transport.Capabilities{Streaming: streaming})
}
