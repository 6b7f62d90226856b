package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("ECHONOTE_DATA_DIR", t.TempDir())
	t.Setenv("ECHONOTE_DB", "")
	t.Setenv("ECHONOTE_LANGUAGE", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Contains(t, cfg.SQLitePath(), "echonote.db")
	assert.Contains(t, cfg.AssetsDir(), "recordings")
	assert.False(t, cfg.ArchiveEnabled())
}

func TestFromEnvPostgresRequiresDSN(t *testing.T) {
	t.Setenv("ECHONOTE_DATA_DIR", t.TempDir())
	t.Setenv("ECHONOTE_DB", "postgres")
	t.Setenv("ECHONOTE_PG_DSN", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ECHONOTE_PG_DSN")
}

func TestFromEnvUnknownDriver(t *testing.T) {
	t.Setenv("ECHONOTE_DATA_DIR", t.TempDir())
	t.Setenv("ECHONOTE_DB", "oracle")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ECHONOTE_DB driver")
}

func TestFromEnvMinioValidation(t *testing.T) {
	t.Setenv("ECHONOTE_DATA_DIR", t.TempDir())
	t.Setenv("ECHONOTE_DB", "sqlite")
	t.Setenv("ECHONOTE_MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("ECHONOTE_MINIO_ACCESS_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)

	t.Setenv("ECHONOTE_MINIO_ACCESS_KEY", "minioadmin")
	t.Setenv("ECHONOTE_MINIO_SECRET_KEY", "minioadmin")
	t.Setenv("ECHONOTE_MINIO_BUCKET", "echonote")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.ArchiveEnabled())
}
