package list

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/config"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List stored voice notes, newest first",
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

		if len(notes) == 0 {
			fmt.Println("No notes yet. Record one with 'echonote record'.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tDURATION\tTRANSCRIPT\tTITLE")
		for _, n := range notes {
			transcript := "-"
			if n.HasTranscript() {
				transcript = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%.1fs\t%s\t%s\n",
				n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.Duration, transcript, n.Title)
		}
		w.Flush()
	},
}
