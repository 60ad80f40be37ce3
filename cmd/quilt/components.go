package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cli"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Show the component reference",
	Long:  `Prints the registered component vocabulary with props, child rules and defaults, rendered for the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComponents(cmd)
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}

func runComponents(cmd *cobra.Command) error {
	opts := runOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return err
	}

	markdown := cli.ComponentsMarkdown(engine.Components())
	fmt.Print(cli.RenderMarkdown(markdown))
	return nil
}
