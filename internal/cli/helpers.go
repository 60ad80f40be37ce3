package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/quiltspace/quilt/pkg/domain"
)

// ReadInput loads a template or stylesheet argument: a file path, or
// "-" for stdin.
func ReadInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// LoadProfile reads profile data from a YAML file. An empty path gives
// empty profile data so expressions degrade instead of erroring.
func LoadProfile(path string) (*domain.ProfileData, error) {
	if path == "" {
		return &domain.ProfileData{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile domain.ProfileData
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return &profile, nil
}

// IsTTY reports whether stdout is a terminal; plain output otherwise.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintSuccess writes a green status line to stderr when stdout is a
// terminal, plain text otherwise.
func PrintSuccess(msg string) {
	printStatus(msg, "#34d399")
}

// PrintError writes a red status line to stderr.
func PrintError(msg string) {
	printStatus(msg, "#f87171")
}

func printStatus(msg, hex string) {
	if !IsTTY() {
		fmt.Fprintln(os.Stderr, msg)
		return
	}
	p := termenv.ColorProfile()
	fmt.Fprintln(os.Stderr, termenv.String(msg).Foreground(p.Color(hex)))
}
