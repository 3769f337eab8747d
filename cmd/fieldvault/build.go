package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fieldvault"
	"github.com/spf13/cobra"
)

var (
	buildHistorical bool
	buildNoPush     bool
	buildNodeFile   string
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the dataset folder tree",
	Long: `Run one generator pass over the vault in the current directory: create
missing node, project, sensor, site and run folders, write metadata
templates where absent, and commit the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		report, err := fieldvault.Build(context.Background(), cwd, slog.Default(),
			fieldvault.WithGitless(gitless),
			fieldvault.WithMustExist(true),
			fieldvault.WithHistorical(buildHistorical),
			fieldvault.WithPush(!buildNoPush),
			fieldvault.WithNodeFile(buildNodeFile),
		)
		if err != nil {
			fatal("Build failed", err)
		}

		for _, issue := range report.Issues {
			fmt.Fprintf(os.Stderr, "skipped: %s\n", issue)
		}

		if report.Changed() {
			fmt.Println("Build complete:", report.Summary())
		} else {
			fmt.Println("Build complete. No new files or folders created.")
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildHistorical, "historical", "p", false, "Allow field log dates older than the default window")
	buildCmd.Flags().BoolVar(&buildNoPush, "no-push", false, "Commit but do not push")
	buildCmd.Flags().StringVar(&buildNodeFile, "node-file", "", "Node summary YAML path (default NodeSummary.yaml)")
}
