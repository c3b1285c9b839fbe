package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pablasso/sensei/internal/cli"
	"github.com/pablasso/sensei/internal/tui"
)

func main() {
	// Pick up SENSEI_API_KEY / OPENAI_API_KEY from a local .env if present.
	_ = godotenv.Load()

	// If no args, launch TUI; otherwise route to CLI
	if len(os.Args) == 1 {
		if err := tui.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
	}
}
