package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echonote/internal/app/blob"
	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/model"
	"echonote/internal/app/recorder"
	"echonote/internal/app/repository"
	"echonote/internal/app/transcribe"
)

// Archiver mirrors promoted assets to secondary storage. Optional and best
// effort; *blob.Archiver satisfies it.
type Archiver interface {
	Archive(ctx context.Context, localPath, finalName string) error
	Remove(ctx context.Context, finalName string) error
}

// BlobStore is the slice of the asset store the coordinator drives.
// *blob.Store satisfies it.
type BlobStore interface {
	Promote(tempPath, finalName string) error
	Delete(finalName string) error
	Exists(finalName string) bool
	Path(finalName string) string
	RemoveTemp(tempPath string) error
	StaleTemps(olderThan time.Duration) ([]string, error)
}

// Coordinator drives the finalize protocol for one process:
//
//  1. synchronous, durable metadata insert,
//  2. asynchronous asset promotion (compensating metadata delete on failure),
//  3. asynchronous single-shot transcription feeding back into the store.
//
// The metadata row always exists before the asset carries its final name, so
// a crash can leave a row without an asset but never an unreferenced asset.
type Coordinator struct {
	notes       repository.NoteDAO
	blobs       BlobStore
	transcriber *transcribe.Service
	archiver    Archiver
	logger      *zap.Logger

	// stopPlayback, when set, is invoked before an asset is deleted so an
	// active playback session releases the file first.
	stopPlayback func()

	wg sync.WaitGroup
}

func NewCoordinator(
	notes repository.NoteDAO,
	blobs BlobStore,
	transcriber *transcribe.Service,
	archiver Archiver,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		notes:       notes,
		blobs:       blobs,
		transcriber: transcriber,
		archiver:    archiver,
		logger:      logger,
	}
}

// Notes exposes the metadata store for read paths (listing, export).
func (c *Coordinator) Notes() repository.NoteDAO {
	return c.notes
}

// Blobs exposes the asset store for playback flows.
func (c *Coordinator) Blobs() BlobStore {
	return c.blobs
}

// SetPlaybackStopper registers the hook called before asset deletion.
func (c *Coordinator) SetPlaybackStopper(stop func()) {
	c.stopPlayback = stop
}

// Commit turns a stopped recording into a persisted VoiceNote. The metadata
// insert happens synchronously; if it fails the temporary asset is discarded
// and no promotion is attempted. Promotion and transcription run in the
// background; their failures are compensated locally and only logged.
func (c *Coordinator) Commit(ctx context.Context, session *recorder.Session, rec *recorder.Recording, title, languageHint string) (model.VoiceNote, error) {
	if rec == nil {
		return model.VoiceNote{}, apperrors.New("nothing to commit: no recording")
	}
	if c.transcriber == nil {
		return model.VoiceNote{}, apperrors.New("no transcription provider configured; cannot commit recordings")
	}

	if title == "" {
		title = model.DefaultTitle(rec.CreatedAt)
	}

	note := model.VoiceNote{
		ID:        uuid.NewString(),
		Filename:  blob.NewFinalName(rec.CreatedAt),
		Title:     title,
		CreatedAt: rec.CreatedAt,
		Duration:  rec.Duration,
	}

	// Step 1: durable insert, strictly before promotion begins.
	if err := c.notes.Insert(note); err != nil {
		if rmErr := c.blobs.RemoveTemp(rec.TempPath); rmErr != nil {
			c.logger.Warn("failed to discard temp asset after insert failure",
				zap.String("temp", rec.TempPath), zap.Error(rmErr))
		}
		return model.VoiceNote{}, apperrors.Wrap(err, "failed to commit note")
	}

	if session != nil {
		if err := session.MarkCommitted(); err != nil {
			c.logger.Warn("session state mismatch on commit", zap.Error(err))
		}
	}

	// Steps 2 and 3 run off the caller's line of control.
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.finalize(ctx, note, rec.TempPath, languageHint)
	}()

	return note, nil
}

// finalize performs promotion and, on success, transcription.
func (c *Coordinator) finalize(ctx context.Context, note model.VoiceNote, tempPath, languageHint string) {
	if err := c.blobs.Promote(tempPath, note.Filename); err != nil {
		// Compensating action: the metadata row would otherwise reference an
		// asset that never arrived. The temp file stays for inspection.
		c.logger.Error("asset promotion failed, removing orphaned note",
			zap.String("note_id", note.ID), zap.Error(err))
		if delErr := c.notes.Delete(note.ID); delErr != nil && !errors.Is(delErr, apperrors.ErrNotFound) {
			c.logger.Error("compensating delete failed; note row is orphaned",
				zap.String("note_id", note.ID), zap.Error(delErr))
		}
		return
	}

	assetPath := c.blobs.Path(note.Filename)

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, assetPath, note.Filename); err != nil {
			c.logger.Warn("asset archive failed", zap.String("note_id", note.ID), zap.Error(err))
		}
	}

	c.applyTranscript(note.ID, <-c.transcriber.Transcribe(ctx, assetPath, languageHint))
}

// applyTranscript writes a successful transcription result to the store. A
// failed or empty result leaves the note transcript-less; a note deleted in
// the meantime makes the late update a no-op.
func (c *Coordinator) applyTranscript(noteID string, res transcribe.Result) {
	if !res.OK {
		c.logger.Info("note remains without transcript", zap.String("note_id", noteID))
		return
	}

	err := c.notes.UpdateTranscript(noteID, res.Text)
	switch {
	case err == nil:
		c.logger.Info("transcript stored", zap.String("note_id", noteID))
	case errors.Is(err, apperrors.ErrNotFound):
		c.logger.Info("transcript arrived for deleted note, dropping",
			zap.String("note_id", noteID))
	default:
		c.logger.Error("failed to store transcript",
			zap.String("note_id", noteID), zap.Error(err))
	}
}

// DeleteNote removes a note and its asset. Playback referencing the asset is
// stopped first; asset and metadata deletion are independent, and a missing
// asset never blocks removal of the row.
func (c *Coordinator) DeleteNote(id string) error {
	note, err := c.notes.GetByID(id)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Already gone; deletion is idempotent from the caller's view.
		return nil
	}
	if err != nil {
		return err
	}

	if c.stopPlayback != nil {
		c.stopPlayback()
	}

	if err := c.blobs.Delete(note.Filename); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			c.logger.Warn("asset already missing at delete time",
				zap.String("note_id", id), zap.String("filename", note.Filename))
		} else {
			c.logger.Error("asset deletion failed, removing metadata anyway",
				zap.String("note_id", id), zap.Error(err))
		}
	}

	if c.archiver != nil {
		if err := c.archiver.Remove(context.Background(), note.Filename); err != nil {
			c.logger.Warn("failed to remove archived copy",
				zap.String("note_id", id), zap.String("filename", note.Filename), zap.Error(err))
		}
	}

	if err := c.notes.Delete(id); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Wrap(err, "failed to delete note record")
	}
	return nil
}

// Wait blocks until all in-flight promotions and transcriptions finish.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Close drains in-flight work and releases the metadata store.
func (c *Coordinator) Close() error {
	c.wg.Wait()
	return c.notes.Close()
}
