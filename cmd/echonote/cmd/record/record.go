package record

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	apperrors "echonote/internal/app/errors"
	"echonote/internal/app/logger"
	"echonote/internal/app/model"
	"echonote/internal/app/recorder"
	"echonote/internal/config"
)

var (
	title       string
	language    string
	maxDuration time.Duration
	inputFormat string
	inputDevice string
)

func init() {
	Cmd.Flags().StringVarP(&title, "title", "t", "",
		"Title for the note; defaults to one derived from the creation time")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"Language hint for transcription as a BCP-47 tag, example: tr-TR")
	Cmd.Flags().DurationVarP(&maxDuration, "max-duration", "d", 0,
		"Stop recording automatically after this duration, example: 90s")
	Cmd.Flags().StringVar(&inputFormat, "input-format", "",
		"ffmpeg input format, defaults to alsa on linux and avfoundation on macOS")
	Cmd.Flags().StringVar(&inputDevice, "input-device", "",
		"Audio input device passed to ffmpeg, example: hw:0 or :0")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record a new voice note from the default audio input",
	Long: `Record a new voice note from the default audio input

- Audio is captured to a temporary file until Ctrl-C or --max-duration
- On stop the note is committed: metadata first, then the asset
- Transcription runs in the background; the command waits for it`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		zlog := logger.MustNewLogger(false)
		defer zlog.Sync()

		coordinator, err := app.InitializeCoordinator(cfg, zlog)
		if err != nil {
			log.Fatalf("failed to initialize pipeline: %v", err)
		}
		defer coordinator.Close()

		blobs, err := app.InitializeBlobStore(cfg, zlog)
		if err != nil {
			log.Fatalf("failed to open asset store: %v", err)
		}

		device := recorder.NewFFmpegDevice(inputFormat, inputDevice)
		session := recorder.NewSession(device, blobs, zlog)

		ctx := context.Background()
		if err := session.Begin(ctx); err != nil {
			log.Fatalf("failed to start recording: %v", err)
		}

		fmt.Println("Recording... press Ctrl-C to stop")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		var timeout <-chan time.Time
		if maxDuration > 0 {
			timeout = time.After(maxDuration)
		}
		select {
		case <-sig:
		case <-timeout:
			fmt.Println("Reached maximum duration, stopping")
		}

		rec, err := session.Stop()
		if err != nil {
			log.Fatalf("failed to stop recording: %v", err)
		}
		if rec == nil {
			return
		}

		note, err := coordinator.Commit(ctx, session, rec, title, language)
		if err != nil {
			log.Fatalf("failed to save note: %v", err)
		}
		fmt.Printf("Saved note %s (%q, %.1fs)\n", note.ID, note.Title, note.Duration)

		fmt.Println("Waiting for transcription...")
		coordinator.Wait()

		stored, getErr := coordinator.Notes().GetByID(note.ID)
		msg, err := outcomeMessage(stored, getErr, rec.TempPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(msg)
	},
}

// outcomeMessage renders the post-commit status. A not-found reload means the
// background promotion failed and the note was rolled back; the temp file is
// kept for inspection.
func outcomeMessage(stored model.VoiceNote, err error, tempPath string) (string, error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("saving the audio failed and the note was rolled back; the temporary recording is kept at %s", tempPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to reload note: %w", err)
	}
	if stored.HasTranscript() {
		return "Transcript:\n" + *stored.Transcript, nil
	}
	return "No transcript available; retry later with 'echonote reconcile --retry-transcripts'", nil
}
