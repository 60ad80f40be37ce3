package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cli"
	quilthttp "github.com/quiltspace/quilt/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local preview server",
	Long:  `Serves the preview API: POST /render, POST /validate, POST /stylesheet, GET /components, plus /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	opts := runOptions(cmd)
	logger := cli.CreateLogger(opts.Debug)

	engine, err := cli.CreateEngine(opts, logger)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	handler := quilthttp.NewHandler(engine, logger)

	cli.PrintSuccess(fmt.Sprintf("Preview server listening on %s", addr))
	return http.ListenAndServe(addr, handler)
}
