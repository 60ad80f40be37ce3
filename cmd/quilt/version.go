package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quilt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quilt version %s\n", strings.TrimSpace(quilt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
