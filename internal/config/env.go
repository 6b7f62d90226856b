package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultLanguage    = "tr-TR"
	DefaultDBDriver    = "sqlite"
	defaultDataDirName = "data"
)

// Config holds everything the application reads from the environment.
type Config struct {
	// DataDir is the application-private storage root; assets live directly
	// under it and the sqlite database at DataDir/echonote.db.
	DataDir string

	// DBDriver selects the metadata store backend: "sqlite" or "postgres".
	DBDriver string
	PgDSN    string

	// Language is the default transcription locale hint (e.g. "tr-TR"),
	// overridable per call.
	Language string

	OpenAIKey        string
	WhisperCppBinary string
	WhisperCppModel  string

	// ProvidersConfigPath points to the optional transcriber providers yaml.
	ProvidersConfigPath string

	// Minio settings for the optional asset archive. Archive is disabled when
	// Endpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// TranscribeTimeout bounds a single transcription attempt.
	TranscribeTimeout time.Duration
}

// LoadEnv loads environment variables from a .env file if one exists. Missing
// files are not an error; system-wide environment variables may be in use.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DataDir:             strings.TrimSpace(os.Getenv("ECHONOTE_DATA_DIR")),
		DBDriver:            strings.TrimSpace(os.Getenv("ECHONOTE_DB")),
		PgDSN:               strings.TrimSpace(os.Getenv("ECHONOTE_PG_DSN")),
		Language:            strings.TrimSpace(os.Getenv("ECHONOTE_LANGUAGE")),
		OpenAIKey:           strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		WhisperCppBinary:    strings.TrimSpace(os.Getenv("WHISPER_CPP_BINARY")),
		WhisperCppModel:     strings.TrimSpace(os.Getenv("WHISPER_CPP_MODEL")),
		ProvidersConfigPath: strings.TrimSpace(os.Getenv("ECHONOTE_PROVIDERS_CONFIG")),
		MinioEndpoint:       strings.TrimSpace(os.Getenv("ECHONOTE_MINIO_ENDPOINT")),
		MinioAccessKey:      strings.TrimSpace(os.Getenv("ECHONOTE_MINIO_ACCESS_KEY")),
		MinioSecretKey:      strings.TrimSpace(os.Getenv("ECHONOTE_MINIO_SECRET_KEY")),
		MinioBucket:         strings.TrimSpace(os.Getenv("ECHONOTE_MINIO_BUCKET")),
		MinioUseSSL:         os.Getenv("ECHONOTE_MINIO_USE_SSL") == "true",
		TranscribeTimeout:   5 * time.Minute,
	}

	if cfg.DataDir == "" {
		root, err := projectRoot()
		if err != nil {
			// Fall back to the working directory when run outside a checkout.
			root, err = os.Getwd()
			if err != nil {
				return nil, err
			}
		}
		cfg.DataDir = filepath.Join(root, defaultDataDirName)
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = DefaultDBDriver
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.PgDSN == "" {
			return fmt.Errorf("ECHONOTE_PG_DSN is required when ECHONOTE_DB=postgres")
		}
	default:
		return fmt.Errorf("unknown ECHONOTE_DB driver %q (want sqlite or postgres)", c.DBDriver)
	}

	if c.MinioEndpoint != "" {
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" || c.MinioBucket == "" {
			return fmt.Errorf("minio archive needs ECHONOTE_MINIO_ACCESS_KEY, ECHONOTE_MINIO_SECRET_KEY and ECHONOTE_MINIO_BUCKET")
		}
	}
	return nil
}

// SQLitePath returns the location of the sqlite metadata database.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "echonote.db")
}

// AssetsDir returns the directory holding temporary and permanent assets.
func (c *Config) AssetsDir() string {
	return filepath.Join(c.DataDir, "recordings")
}

// ArchiveEnabled reports whether the minio asset archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.MinioEndpoint != ""
}

// projectRoot finds the project root directory by looking for go.mod.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}
