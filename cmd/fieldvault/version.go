package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fieldvault"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fieldvault",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fieldvault version %s\n", strings.TrimSpace(fieldvault.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
