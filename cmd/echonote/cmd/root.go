package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"echonote/cmd/echonote/cmd/delete"
	"echonote/cmd/echonote/cmd/export"
	"echonote/cmd/echonote/cmd/list"
	"echonote/cmd/echonote/cmd/play"
	"echonote/cmd/echonote/cmd/reconcile"
	"echonote/cmd/echonote/cmd/record"
	"echonote/cmd/echonote/cmd/rename"
	"echonote/cmd/echonote/cmd/serve"
	"echonote/cmd/echonote/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "echonote",
	Short: "Capture voice notes, store them durably and transcribe them in the background",
	Long: `Capture voice notes, store them durably and transcribe them in the background.
- Record from the default audio input into a temporary file
- On commit the note metadata is stored first, then the audio asset is promoted
- Transcription runs asynchronously and fills in the transcript when it arrives`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(play.Cmd)
	rootCmd.AddCommand(rename.Cmd)
	rootCmd.AddCommand(delete.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(reconcile.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
