// Package cli carries the plumbing shared by the quilt commands:
// engine construction, logger setup, input loading and terminal output.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/quiltspace/quilt"
	"github.com/quiltspace/quilt/internal/logging"
	"github.com/quiltspace/quilt/pkg/adapters/memory"
	"github.com/quiltspace/quilt/pkg/adapters/redis"
)

// RunOptions are the settings every command shares.
type RunOptions struct {
	Debug bool
	// Container is the profile container id for CSS scoping.
	Container string
	// RedisAddr, when set, backs persisted variables with Redis instead
	// of process memory.
	RedisAddr string
}

// CreateLogger configures the command logger. Non-debug runs stay
// quiet; stdout is reserved for rendered output.
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// CreateEngine initializes a Quilt engine with standard CLI
// conventions.
func CreateEngine(opts RunOptions, logger *slog.Logger) (*quilt.Engine, error) {
	engineOpts := []quilt.Option{
		quilt.WithLogger(logger),
	}

	if opts.Container != "" {
		engineOpts = append(engineOpts, quilt.WithContainer(opts.Container))
	}

	if opts.RedisAddr != "" {
		engineOpts = append(engineOpts, quilt.WithStore(redis.New(opts.RedisAddr, "", 0)))
	} else {
		engineOpts = append(engineOpts, quilt.WithStore(memory.NewStore()))
	}

	engine, err := quilt.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
