package rename

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/config"
)

// Cmd represents the rename command
var Cmd = &cobra.Command{
	Use:   "rename <note-id> <new-title>",
	Short: "Change the title of a stored voice note",
	Args:  cobra.ExactArgs(2),
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

		if err := coordinator.Notes().Rename(args[0], args[1]); err != nil {
			log.Fatalf("failed to rename note: %v", err)
		}
		fmt.Printf("Renamed note %s to %q\n", args[0], args[1])
	},
}
