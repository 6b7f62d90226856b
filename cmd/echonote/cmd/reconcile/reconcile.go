package reconcile

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/app/pipeline"
	"echonote/internal/config"
)

var (
	retryTranscripts bool
	tempMaxAge       time.Duration
	language         string
)

func init() {
	Cmd.Flags().BoolVar(&retryTranscripts, "retry-transcripts", false,
		"Re-run transcription for notes that still have no transcript")
	Cmd.Flags().DurationVar(&tempMaxAge, "temp-max-age", time.Hour,
		"Temporary recordings older than this are removed")
	Cmd.Flags().StringVarP(&language, "language", "l", "",
		"Language hint for retried transcriptions")
}

// Cmd represents the reconcile command
var Cmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Repair note storage after a crash",
	Long: `Repair note storage after a crash

- Notes whose audio asset never got promoted are removed
- Stale temporary recordings are swept
- With --retry-transcripts, transcript-less notes get one more attempt`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		zlog := logger.MustNewLogger(false)
		defer zlog.Sync()

		// The transcription provider is only needed when retrying.
		var coordinator *pipeline.Coordinator
		if retryTranscripts {
			coordinator, err = app.InitializeCoordinator(cfg, zlog)
		} else {
			coordinator, err = app.InitializeManagementCoordinator(cfg, zlog)
		}
		if err != nil {
			log.Fatalf("failed to initialize pipeline: %v", err)
		}
		defer coordinator.Close()

		report, err := coordinator.Reconcile(context.Background(), pipeline.ReconcileOptions{
			TempMaxAge:       tempMaxAge,
			RetryTranscripts: retryTranscripts,
			Language:         language,
			Progress:         os.Stdout,
		})
		if err != nil {
			log.Fatalf("reconcile failed: %v", err)
		}

		fmt.Printf("notes seen: %d\n", report.NotesSeen)
		fmt.Printf("orphan rows reaped: %d\n", report.OrphanRowsReaped)
		fmt.Printf("stale temps removed: %d\n", report.StaleTempsRemoved)
		if retryTranscripts {
			fmt.Printf("transcripts recovered: %d\n", report.TranscriptsRecovered)
			fmt.Printf("transcripts still empty: %d\n", report.TranscriptsStillEmpty)
		}
	},
}
