package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig selects and configures the transcription providers.
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig configures a single transcription provider.
type ProviderConfig struct {
	Type     string            `yaml:"type"`
	Enabled  bool              `yaml:"enabled"`
	Settings map[string]string `yaml:"settings,omitempty"`
}

// Known provider types.
const (
	ProviderOpenAIWhisper = "openai_whisper"
	ProviderWhisperCpp    = "whisper_cpp"
)

// LoadProvidersConfig loads provider configuration from a YAML file.
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers config %s: %w", configPath, err)
	}

	var cfg ProvidersConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse providers config %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultProvidersConfig is used when no yaml file is supplied: the OpenAI
// Whisper provider, enabled, configured purely from the environment.
func DefaultProvidersConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "whisper",
		Providers: map[string]ProviderConfig{
			"whisper": {
				Type:    ProviderOpenAIWhisper,
				Enabled: true,
			},
		},
	}
}

// Validate checks that the default provider exists, is enabled and has a
// known type.
func (c *ProvidersConfig) Validate() error {
	if c.DefaultProvider == "" {
		return fmt.Errorf("providers config: default_provider is required")
	}
	p, ok := c.Providers[c.DefaultProvider]
	if !ok {
		return fmt.Errorf("providers config: default_provider %q is not defined", c.DefaultProvider)
	}
	if !p.Enabled {
		return fmt.Errorf("providers config: default_provider %q is disabled", c.DefaultProvider)
	}
	switch p.Type {
	case ProviderOpenAIWhisper, ProviderWhisperCpp:
	default:
		return fmt.Errorf("providers config: unknown provider type %q", p.Type)
	}
	return nil
}

// Default returns the configuration of the default provider.
func (c *ProvidersConfig) Default() ProviderConfig {
	return c.Providers[c.DefaultProvider]
}
