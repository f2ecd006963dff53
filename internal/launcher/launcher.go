// Package launcher assembles the torchrun invocation and runs it, streaming
// the child's output through untouched and propagating its exit status.
package launcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cogact-team/amlrun/internal/config"
)

// CommandRunner runs a command to completion. It returns the child's exit
// status when the child ran at all; a non-nil error means the child could not
// be started and no exit status exists.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error)
}

// ExecCommandRunner uses os/exec.
type ExecCommandRunner struct{}

// Run starts the command and waits for it. Stdout and stderr stream directly
// to the given writers, unbuffered and untransformed.
func (ExecCommandRunner) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	err := cmd.Wait()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}

	return 0, nil
}

// Launcher runs the external launch tool.
type Launcher struct {
	runner CommandRunner
	cfg    config.LauncherConfig
}

// New creates a launcher using os/exec.
func New(cfg config.LauncherConfig) *Launcher {
	return &Launcher{cfg: cfg, runner: ExecCommandRunner{}}
}

// NewWithRunner creates a launcher with a custom runner.
func NewWithRunner(cfg config.LauncherConfig, runner CommandRunner) *Launcher {
	return &Launcher{cfg: cfg, runner: runner}
}

// WorkerCount converts the raw GPU_COUNT value into a bounded positive
// worker count. Unset or unparsable values fall back to the configured
// default; values above the configured bound are clamped.
func (l *Launcher) WorkerCount(raw string) int {
	workers := l.cfg.DefaultWorkers

	if raw != "" {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			slog.Warn("Invalid worker count, using default", "value", raw, "default", workers)
		} else {
			workers = n
		}
	}

	if l.cfg.MaxWorkers > 0 && workers > l.cfg.MaxWorkers {
		slog.Warn("Worker count exceeds bound, clamping", "requested", workers, "max", l.cfg.MaxWorkers)
		workers = l.cfg.MaxWorkers
	}

	return workers
}

// Argv builds the full argument vector for the launch tool: the fixed
// standalone prefix, the worker count, the target script, then the processed
// arguments.
func (l *Launcher) Argv(script string, workers int, processed []string) []string {
	argv := []string{
		"--standalone",
		"--nproc-per-node", strconv.Itoa(workers),
		script,
	}

	return append(argv, processed...)
}

// Launch runs the launch tool and blocks until it terminates. The returned
// exit status is the child's own when the child ran; err is non-nil only when
// the child could not be started (binary missing, permission denied), a
// distinct condition with no child status to report.
func (l *Launcher) Launch(ctx context.Context, script string, workers int, processed []string, stdout, stderr io.Writer) (int, error) {
	argv := l.Argv(script, workers, processed)

	slog.Info("Running launch command", "command", l.cfg.Binary+" "+strings.Join(argv, " "))

	code, err := l.runner.Run(ctx, l.cfg.Binary, argv, stdout, stderr)
	if err != nil {
		return 0, err
	}

	return code, nil
}
