package main

import (
	"github.com/spf13/cobra"

	"github.com/quiltspace/quilt/internal/cli"
)

// runOptions collects the persistent flags into shared run options.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	debug, _ := cmd.Flags().GetBool("debug")
	container, _ := cmd.Flags().GetString("container")
	redisAddr, _ := cmd.Flags().GetString("redis")
	return cli.RunOptions{
		Debug:     debug,
		Container: container,
		RedisAddr: redisAddr,
	}
}
