package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cli"
	"github.com/quiltspace/quilt/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Check a template for structural errors",
	Long:  `Parses the template and reports every structural defect with its location. Structural errors block publishing; unknown plain tags do not.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			os.Exit(1)
		}
		cli.PrintSuccess("Template is valid ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	opts := runOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		cli.PrintError(err.Error())
		return err
	}

	source, err := cli.ReadInput(path)
	if err != nil {
		cli.PrintError(err.Error())
		return err
	}

	if _, err := engine.Parse(source); err != nil {
		var serrs domain.StructuralErrors
		if errors.As(err, &serrs) {
			cli.PrintError(fmt.Sprintf("%d structural error(s):", len(serrs)))
			for _, se := range serrs {
				fmt.Fprintf(os.Stderr, "  %s\n", se.Error())
			}
			return err
		}
		cli.PrintError(err.Error())
		return err
	}
	return nil
}
