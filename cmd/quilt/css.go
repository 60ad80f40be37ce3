package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cascade"
	"github.com/quiltspace/quilt/internal/cli"
)

var cssCmd = &cobra.Command{
	Use:   "css <stylesheet>",
	Short: "Build the isolated profile stylesheet from user CSS",
	Long:  `Scopes the user CSS to the profile container, applies the dominance transform and assembles the layered stylesheet (or the specificity fallback with --no-layers).`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCSS(cmd, args[0])
	},
}

func init() {
	cssCmd.Flags().String("mode", "inherit", "CSS mode: inherit, override or disable")
	cssCmd.Flags().String("template-mode", "default", "Template mode: default, enhanced or advanced")
	cssCmd.Flags().Bool("no-layers", false, "Emit the fallback stylesheet without @layer wrapping")
	rootCmd.AddCommand(cssCmd)
}

func runCSS(cmd *cobra.Command, path string) error {
	opts := runOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return err
	}

	userCSS, err := cli.ReadInput(path)
	if err != nil {
		return err
	}

	mode, _ := cmd.Flags().GetString("mode")
	templateMode, _ := cmd.Flags().GetString("template-mode")
	noLayers, _ := cmd.Flags().GetBool("no-layers")

	out := engine.Stylesheet(cascade.Input{
		CSSMode:      cascade.CSSMode(mode),
		TemplateMode: cascade.TemplateMode(templateMode),
		NoLayers:     noLayers,
		Origins:      cascade.OriginBlocks{UserCSS: userCSS},
	})

	fmt.Print(out)
	return nil
}
