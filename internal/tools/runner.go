// Package tools wraps the external Python quality tools (flake8, black,
// radon). Every invocation runs with a bounded timeout and failures are
// reported back so callers can fall back to heuristic analysis.
package tools

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single tool invocation
const DefaultTimeout = 30 * time.Second

// Tool names as they appear on PATH and in status messages
const (
	ToolFlake8 = "flake8"
	ToolBlack  = "black"
	ToolRadon  = "radon"
)

// Availability records which tools were found on PATH
type Availability struct {
	Flake8 bool
	Black  bool
	Radon  bool
}

// Status renders the availability as a human-readable line
func (a Availability) Status() string {
	var missing []string
	if !a.Flake8 {
		missing = append(missing, ToolFlake8)
	}
	if !a.Black {
		missing = append(missing, ToolBlack)
	}
	if !a.Radon {
		missing = append(missing, ToolRadon)
	}
	if len(missing) > 0 {
		return "Tools not available: " + strings.Join(missing, ", ") + " - using heuristic analysis"
	}
	return "all tools available"
}

// Runner executes external tools against temp copies of file content
type Runner struct {
	timeout time.Duration
}

// NewRunner creates a runner with the given per-invocation timeout.
// A non-positive timeout falls back to the default.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout}
}

// Probe checks which tools respond to --version. Called once per
// analysis run; the result is cached by the caller.
func (r *Runner) Probe(ctx context.Context) Availability {
	return Availability{
		Flake8: r.probeTool(ctx, ToolFlake8),
		Black:  r.probeTool(ctx, ToolBlack),
		Radon:  r.probeTool(ctx, ToolRadon),
	}
}

func (r *Runner) probeTool(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, "--version")
	return cmd.Run() == nil
}

// run executes a command and returns its stdout. A timeout or non-start
// is an error; a non-zero exit with output is not, since flake8 exits
// non-zero whenever it finds issues.
func (r *Runner) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout

	err := cmd.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return stdout.String(), nil
		}
		return "", err
	}
	return stdout.String(), nil
}

// withTempFile writes content to a temp .py file, calls fn with its
// path, and cleans up afterwards
func withTempFile(content string, fn func(path string) error) error {
	f, err := os.CreateTemp("", "pyrefine-*.py")
	if err != nil {
		return err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return fn(path)
}
