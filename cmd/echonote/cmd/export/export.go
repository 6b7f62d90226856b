package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/export"
	"echonote/internal/app/logger"
	"echonote/internal/config"
)

var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all voice notes and their transcripts to excel",
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

		notes, err := coordinator.Notes().ListAll()
		if err != nil {
			log.Fatalf("failed to list notes: %v", err)
		}

		if err := export.ToExcel(notes, outputFilePath); err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
