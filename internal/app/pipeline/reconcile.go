package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	apperrors "echonote/internal/app/errors"
)

// ReconcileOptions tunes the startup sweep.
type ReconcileOptions struct {
	// TempMaxAge: temporary assets older than this are removed. Zero means
	// the one-hour default.
	TempMaxAge time.Duration

	// RetryTranscripts re-runs transcription for notes whose transcript is
	// still null. Off by default; the live pipeline never retries.
	RetryTranscripts bool

	// Language hint used for retried transcriptions.
	Language string

	// Progress, when non-nil, receives a progress bar rendering.
	Progress io.Writer
}

// ReconcileReport summarizes one sweep.
type ReconcileReport struct {
	NotesSeen             int
	OrphanRowsReaped      int
	StaleTempsRemoved     int
	TranscriptsRecovered  int
	TranscriptsStillEmpty int
}

const defaultTempMaxAge = time.Hour

// Reconcile repairs the recoverable crash states the finalize protocol can
// leave behind: note rows whose asset never got promoted are reaped, stale
// temporary files are swept, and optionally transcript-less notes get one
// more transcription attempt.
func (c *Coordinator) Reconcile(ctx context.Context, opts ReconcileOptions) (ReconcileReport, error) {
	var report ReconcileReport

	if opts.TempMaxAge <= 0 {
		opts.TempMaxAge = defaultTempMaxAge
	}
	if opts.RetryTranscripts && c.transcriber == nil {
		return report, apperrors.New("reconcile: transcript retry needs a transcription provider")
	}

	notes, err := c.notes.ListAll()
	if err != nil {
		return report, apperrors.Wrap(err, "reconcile: failed to list notes")
	}
	report.NotesSeen = len(notes)

	var container *mpb.Progress
	var bar *mpb.Bar
	if opts.Progress != nil && len(notes) > 0 {
		container = mpb.New(mpb.WithOutput(opts.Progress), mpb.WithWidth(48))
		bar = container.AddBar(int64(len(notes)),
			mpb.PrependDecorators(decor.Name("reconcile")),
			mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
		)
	}

	for _, note := range notes {
		if bar != nil {
			bar.Increment()
		}

		if !c.blobs.Exists(note.Filename) {
			// "Metadata without asset": the recoverable crash state. The
			// asset can no longer arrive, so the row is reaped.
			c.logger.Warn("reaping note without asset",
				zap.String("note_id", note.ID), zap.String("filename", note.Filename))
			if err := c.notes.Delete(note.ID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				c.logger.Error("failed to reap orphan note", zap.String("note_id", note.ID), zap.Error(err))
				continue
			}
			report.OrphanRowsReaped++
			continue
		}

		if opts.RetryTranscripts && !note.HasTranscript() {
			res := <-c.transcriber.Transcribe(ctx, c.blobs.Path(note.Filename), opts.Language)
			if res.OK {
				c.applyTranscript(note.ID, res)
				report.TranscriptsRecovered++
			} else {
				report.TranscriptsStillEmpty++
			}
		}
	}

	if container != nil {
		container.Wait()
	}

	stale, err := c.blobs.StaleTemps(opts.TempMaxAge)
	if err != nil {
		return report, apperrors.Wrap(err, "reconcile: failed to scan temp assets")
	}
	for _, path := range stale {
		if err := c.blobs.RemoveTemp(path); err != nil {
			c.logger.Error("failed to remove stale temp asset", zap.String("temp", path), zap.Error(err))
			continue
		}
		c.logger.Info("removed stale temp asset", zap.String("temp", path))
		report.StaleTempsRemoved++
	}

	return report, nil
}
