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
	path := filepath.Join(t.TempDir(), "providers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProvidersConfig(t *testing.T) {
	path := writeConfig(t, `
default_provider: local
providers:
  local:
    type: whisper_cpp
    enabled: true
    settings:
      binary_path: /opt/whisper/main
      model_path: /opt/whisper/ggml-base.bin
  remote:
    type: openai_whisper
    enabled: false
`)

	cfg, err := LoadProvidersConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.DefaultProvider)
	assert.Equal(t, ProviderWhisperCpp, cfg.Default().Type)
	assert.Equal(t, "/opt/whisper/main", cfg.Default().Settings["binary_path"])
}

func TestLoadProvidersConfigRejectsDisabledDefault(t *testing.T) {
	path := writeConfig(t, `
default_provider: remote
providers:
  remote:
    type: openai_whisper
    enabled: false
`)

	_, err := LoadProvidersConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}

func TestLoadProvidersConfigRejectsUnknownType(t *testing.T) {
	path := writeConfig(t, `
default_provider: weird
providers:
  weird:
    type: carrier_pigeon
    enabled: true
`)

	_, err := LoadProvidersConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type")
}

func TestDefaultProvidersConfig(t *testing.T) {
	cfg := DefaultProvidersConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ProviderOpenAIWhisper, cfg.Default().Type)
}
