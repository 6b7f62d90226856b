package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"echonote/internal/api/server"
	"echonote/internal/app"
	"echonote/internal/app/logger"
	"echonote/internal/config"
)

var (
	port        int
	development bool
)

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	Cmd.Flags().BoolVar(&development, "dev", false, "Run gin in debug mode")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored notes over HTTP",
	Long: `Serve the stored notes over HTTP

- GET    /api/v1/notes      list notes
- GET    /api/v1/notes/:id  fetch one note
- PATCH  /api/v1/notes/:id  rename a note
- DELETE /api/v1/notes/:id  delete a note and its asset`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			log.Fatalf("configuration error: %v", err)
		}

		zlog := logger.MustNewLogger(development)
		defer zlog.Sync()

		coordinator, err := app.InitializeManagementCoordinator(cfg, zlog)
		if err != nil {
			log.Fatalf("failed to open note store: %v", err)
		}
		defer coordinator.Close()

		slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		srv := server.New(server.Config{Port: port, Development: development}, coordinator, slogger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			log.Fatalf("server error: %v", err)
		}
	},
}
