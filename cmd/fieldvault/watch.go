package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	fv "github.com/aretw0/fieldvault/pkg/fieldvault"
)

var (
	watchHistorical bool
	watchNodeFile   string
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the tree whenever configuration changes",
	Long: `Run an initial build, then watch the vault for changes to the node
summary, project tables, metadata files and field logs, re-running the
generator pass after each change. Stop with Ctrl-C.`,
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

		builder := fv.NewBuilder(vault,
			fv.WithHistorical(watchHistorical),
			fv.WithNodeFile(watchNodeFile),
			fv.WithPush(false), // watch commits locally; push via 'fieldvault sync'
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching", cwd, "(Ctrl-C to stop)")
		if err := fv.NewWatcher(vault, builder, slog.Default()).Run(ctx); err != nil {
			fatal("Watch failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&watchHistorical, "historical", "p", false, "Allow field log dates older than the default window")
	watchCmd.Flags().StringVar(&watchNodeFile, "node-file", "", "Node summary YAML path (default NodeSummary.yaml)")
}
