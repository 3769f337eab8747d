package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fieldvault"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a fieldvault vault (git init)",
	Long:  `Initialize a new vault in the current directory. This effectively runs 'git init'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		if gitless {
			fatal("Cannot initialize vault in gitless mode", fmt.Errorf("git is required for init"))
		}

		_, err = fieldvault.Open(cwd, slog.Default(), fieldvault.WithAutoInit(true))
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized empty fieldvault vault in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
