package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quilt",
	Short: "Quilt is a template engine for user-customizable profile pages",
	Long:  `Quilt parses, validates and renders untrusted profile templates, builds their isolated stylesheets and serves a local preview.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("container", "profile", "Profile container element id for CSS scoping")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for persisted variables (default: in-memory)")
}
