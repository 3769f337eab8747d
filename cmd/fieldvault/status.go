package main

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	fv "github.com/aretw0/fieldvault/pkg/fieldvault"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print vault component state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		vault, err := fv.NewVault(cwd, slog.Default(),
			fv.WithGitless(gitless),
			fv.WithMustExist(true),
		)
		if err != nil {
			fatal("Failed to open vault", err)
		}
		builder := fv.NewBuilder(vault)

		state := map[string]any{
			vault.ComponentType():   vault.State(),
			builder.ComponentType(): builder.State(),
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Failed to encode state", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
