package app

import (
	"context"

	"go.uber.org/zap"

	"echonote/internal/app/api"
	openaiclient "echonote/internal/app/api/openai"
	"echonote/internal/app/api/openai/whisper"
	"echonote/internal/app/api/whisper_cpp"
	"echonote/internal/app/blob"
	appconfig "echonote/internal/app/config"
	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/pipeline"
	"echonote/internal/app/repository"
	"echonote/internal/app/repository/pg"
	"echonote/internal/app/repository/sqlite"
	"echonote/internal/app/transcribe"
	"echonote/internal/config"
)

func provideNoteDAO(cfg *config.Config) (repository.NoteDAO, error) {
	switch cfg.DBDriver {
	case "postgres":
		return pg.NewPostgresDB(cfg.PgDSN)
	default:
		return sqlite.NewSQLiteDB(cfg.SQLitePath())
	}
}

func provideBlobStore(cfg *config.Config, logger *zap.Logger) (*blob.Store, error) {
	return blob.NewStore(cfg.AssetsDir(), logger)
}

// provideTranscriber selects the speech-to-text provider from the yaml
// config, falling back to the env-configured OpenAI Whisper provider.
func provideTranscriber(cfg *config.Config) (api.Transcriber, error) {
	providers := appconfig.DefaultProvidersConfig()
	if cfg.ProvidersConfigPath != "" {
		loaded, err := appconfig.LoadProvidersConfig(cfg.ProvidersConfigPath)
		if err != nil {
			return nil, err
		}
		providers = loaded
	}

	selected := providers.Default()
	switch selected.Type {
	case appconfig.ProviderWhisperCpp:
		binaryPath := selected.Settings["binary_path"]
		if binaryPath == "" {
			binaryPath = cfg.WhisperCppBinary
		}
		modelPath := selected.Settings["model_path"]
		if modelPath == "" {
			modelPath = cfg.WhisperCppModel
		}
		if binaryPath == "" || modelPath == "" {
			return nil, apperrors.New("whisper_cpp provider needs binary_path and model_path (or WHISPER_CPP_BINARY / WHISPER_CPP_MODEL)")
		}
		return whisper_cpp.NewLocalTranscriber(binaryPath, modelPath), nil
	default:
		client, err := openaiclient.NewClient(cfg.OpenAIKey)
		if err != nil {
			return nil, err
		}
		return whisper.NewRemoteTranscriber(client), nil
	}
}

// InitializeManagementCoordinator builds a coordinator without a speech
// provider, for commands that only read, rename, delete or reconcile notes.
// It needs no speech API keys; Commit and transcript retries are refused.
// The archiver is still wired so deletes also drop the archived copy.
func InitializeManagementCoordinator(cfg *config.Config, logger *zap.Logger) (*pipeline.Coordinator, error) {
	noteDAO, err := provideNoteDAO(cfg)
	if err != nil {
		return nil, err
	}
	store, err := provideBlobStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	archiver, err := provideArchiver(cfg, logger)
	if err != nil {
		return nil, err
	}
	return pipeline.NewCoordinator(noteDAO, store, nil, archiver, logger), nil
}

func provideTranscribeService(cfg *config.Config, transcriber api.Transcriber, logger *zap.Logger) *transcribe.Service {
	return transcribe.NewService(transcriber, cfg.Language, cfg.TranscribeTimeout, logger)
}

// provideArchiver returns nil when the object-storage mirror is not
// configured; the coordinator treats a nil archiver as disabled.
func provideArchiver(cfg *config.Config, logger *zap.Logger) (pipeline.Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return nil, nil
	}
	archiver, err := blob.NewArchiver(context.Background(), blob.ArchiveConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return archiver, nil
}
