package main

import (
	"fmt"
	"os"

	"echonote/cmd/echonote/cmd"
	"echonote/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cmd.Execute()
}
