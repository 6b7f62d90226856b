package play

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/app/player"
	"echonote/internal/config"
)

// Cmd represents the play command
var Cmd = &cobra.Command{
	Use:   "play <note-id>",
	Short: "Play back a stored voice note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		zlog := logger.MustNewLogger(false)
		defer zlog.Sync()

		coordinator, err := app.InitializeManagementCoordinator(cfg, zlog)
		if err != nil {
			log.Fatalf("failed to open note store: %v", err)
		}
		defer coordinator.Close()

		note, err := coordinator.Notes().GetByID(args[0])
		if err != nil {
			log.Fatalf("failed to load note: %v", err)
		}

		blobs, err := app.InitializeBlobStore(cfg, zlog)
		if err != nil {
			log.Fatalf("failed to open asset store: %v", err)
		}

		session := player.NewSession(blobs, player.NewFFplayDevice(), zlog)
		if err := session.Start(note.Filename); err != nil {
			log.Fatalf("failed to start playback: %v", err)
		}
		defer session.Stop()

		fmt.Printf("Playing %q (%.1fs)... press Ctrl-C to stop\n", note.Title, note.Duration)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)

		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-sig:
				fmt.Println()
				return
			case <-ticker.C:
				if !session.Playing() {
					fmt.Printf("\r%3.0f%%\n", 100.0)
					return
				}
				fmt.Printf("\r%3.0f%%", session.Progress()*100)
			}
		}
	},
}
