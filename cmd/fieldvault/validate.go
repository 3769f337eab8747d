package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fieldvault"
	"github.com/spf13/cobra"
)

var validateNodeFile string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the vault configuration without writing anything",
	Long: `Parse the node summary, project tables, metadata files and field logs
and report every row the generator would reject. Nothing is written and
no git operations run. Exits non-zero when any row is rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		report, err := fieldvault.Validate(context.Background(), cwd, slog.Default(),
			fieldvault.WithGitless(true),
			fieldvault.WithMustExist(true),
			fieldvault.WithNodeFile(validateNodeFile),
		)
		if err != nil {
			fatal("Validate failed", err)
		}

		if len(report.Issues) == 0 {
			fmt.Println("Configuration is valid.")
			return
		}

		for _, issue := range report.Issues {
			fmt.Fprintf(os.Stderr, "invalid: %s\n", issue)
		}
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateNodeFile, "node-file", "", "Node summary YAML path (default NodeSummary.yaml)")
}
