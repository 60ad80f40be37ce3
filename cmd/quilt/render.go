package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template to HTML",
	Long:  `Parses and renders the template against optional profile data, writing sanitized HTML to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func init() {
	renderCmd.Flags().String("profile", "", "YAML file with profile data (owner, posts, ...)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, path string) error {
	opts := runOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return err
	}

	source, err := cli.ReadInput(path)
	if err != nil {
		return err
	}

	profilePath, _ := cmd.Flags().GetString("profile")
	profile, err := cli.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	html, err := engine.RenderSource(context.Background(), source, profile)
	if err != nil {
		return err
	}

	fmt.Println(html)
	return nil
}
