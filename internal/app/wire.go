//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"echonote/internal/app/blob"
	"echonote/internal/app/pipeline"
	"echonote/internal/config"
)

// InitializeCoordinator assembles the full capture-to-transcription pipeline.
func InitializeCoordinator(cfg *config.Config, logger *zap.Logger) (*pipeline.Coordinator, error) {
	wire.Build(
		provideNoteDAO,
		provideBlobStore,
		provideTranscriber,
		provideTranscribeService,
		provideArchiver,
		pipeline.NewCoordinator,
		wire.Bind(new(pipeline.BlobStore), new(*blob.Store)),
	)
	return nil, nil
}

// InitializeBlobStore exposes the asset store on its own, for playback flows
// that do not need the write pipeline.
func InitializeBlobStore(cfg *config.Config, logger *zap.Logger) (*blob.Store, error) {
	wire.Build(provideBlobStore)
	return nil, nil
}
