package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	fv "github.com/aretw0/fieldvault/pkg/fieldvault"
)

var listJSON bool

// projectListing is one project found in the vault.
type projectListing struct {
	Node    string             `json:"node"`
	Project string             `json:"project"`
	Summary *fv.ProjectSummary `json:"summary"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		pattern := filepath.ToSlash(filepath.Join(cwd, "*/*/"+fv.ProjectFileName))
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			fatal("Failed to scan vault", err)
		}

		var listings []projectListing
		for _, match := range matches {
			rel, err := filepath.Rel(cwd, match)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			summary, err := fv.LoadProject(match)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", rel, err)
				continue
			}

			projDir := filepath.Dir(rel)
			listings = append(listings, projectListing{
				Node:    filepath.Dir(projDir),
				Project: filepath.Base(projDir),
				Summary: summary,
			})
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(listings); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, l := range listings {
			title := ""
			if l.Summary.Project.FullName != "" {
				title = fmt.Sprintf("- %s", l.Summary.Project.FullName)
			}
			fmt.Printf("%s/%s %s\n", l.Node, l.Project, title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
