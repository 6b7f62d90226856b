package delete

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/config"
)

// Cmd represents the delete command
var Cmd = &cobra.Command{
	Use:   "delete <note-id>",
	Short: "Delete a voice note and its audio asset",
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

		if err := coordinator.DeleteNote(args[0]); err != nil {
			log.Fatalf("failed to delete note: %v", err)
		}
		fmt.Printf("Deleted note %s\n", args[0])
	},
}
