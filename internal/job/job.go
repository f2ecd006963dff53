// Package job orchestrates one launcher run: mount resolution, argument
// processing, checkpoint resolution, and the launch itself.
package job

import (
	"context"
	"io"
	"log/slog"

	"github.com/cogact-team/amlrun/internal/args"
	"github.com/cogact-team/amlrun/internal/config"
	"github.com/cogact-team/amlrun/internal/envvar"
	"github.com/cogact-team/amlrun/internal/launcher"
	"github.com/cogact-team/amlrun/internal/locator"
	"github.com/cogact-team/amlrun/internal/mount"
	"github.com/cogact-team/amlrun/internal/resolver"
	"github.com/cogact-team/amlrun/internal/secret"
)

const (
	// FlagDataRootDir carries the resolved dataset mount.
	FlagDataRootDir = "--data_root_dir"

	// FlagRunRootDir carries the resolved run output mount.
	FlagRunRootDir = "--run_root_dir"
)

// ExitFailure is the exit status for failures with no child status to
// report: unknown job, malformed arguments, missing credential, or a child
// that could not be started.
const ExitFailure = 1

// Params carries everything a run needs. Getenv is injected so tests can
// supply arbitrary environments without touching the real process state.
type Params struct {
	Config  *config.Config
	Name    string
	RawArgs []string
	Getenv  func(string) string
	Stdout  io.Writer
	Stderr  io.Writer

	// Runner overrides the command runner; nil means os/exec.
	Runner launcher.CommandRunner
}

// Run executes the named job and returns the process exit status: the
// child's own status when the child ran, ExitFailure otherwise.
func Run(ctx context.Context, p Params) int {
	cfg := p.Config

	jobCfg, ok := cfg.Jobs[p.Name]
	if !ok {
		slog.Error("Unknown job", "job", p.Name)
		return ExitFailure
	}

	result, err := args.Process(p.RawArgs)
	if err != nil {
		slog.Error("Malformed arguments", "error", err)
		return ExitFailure
	}

	token := secret.NewRef(envvar.HFToken)
	if !token.IsSet(p.Getenv) {
		slog.Error("Required credential is not set, aborting before launch", "env_var", token.Name())
		return ExitFailure
	}

	slog.Info("Starting job", "job", p.Name, "script", jobCfg.Script)
	slog.Debug("Environment snapshot",
		"hf_home", p.Getenv(envvar.HFHome),
		"token_set", true,
		"gpu_count", p.Getenv(envvar.GPUCount))

	var sources []resolver.Source
	if checkpoints, ok := mount.Resolve("cogact_checkpoints", cfg.Mounts.Checkpoints, p.Getenv); ok {
		sources = append(sources, resolver.Source{Dir: checkpoints.Path, Description: "mounted checkpoints"})
	}

	if cache, ok := mount.Resolve("hf_cache", cfg.Mounts.HFCache, p.Getenv); ok {
		sources = append(sources, resolver.Source{Dir: cache.Path, Description: "HuggingFace cache"})
	}

	ref := resolver.Resolve(resolver.Request{
		Override:        result.Override,
		NamespacePrefix: cfg.Checkpoint.NamespacePrefix,
		Sources:         sources,
		FallbackID:      cfg.Checkpoint.ModelID,
		Filenames:       cfg.Checkpoint.Filenames,
		Layout:          locator.CacheLayout{ModelDir: cfg.Checkpoint.CacheModelDir},
	})
	slog.Info("Resolved pretrained checkpoint", "reference", ref.String(), "local", ref.IsLocal())

	var aux []args.AuxDir
	if dataset, ok := mount.Resolve("dataset", cfg.Mounts.Dataset, p.Getenv); ok {
		aux = append(aux, args.AuxDir{Flag: FlagDataRootDir, Path: dataset.Path})
	} else if jobCfg.RequiresDataset {
		// Configuration error, degraded by omission: the child's own
		// argument validation is the backstop.
		slog.Error("Dataset mount not resolved, launching without it",
			"flag", FlagDataRootDir, "candidates", cfg.Mounts.Dataset)
	}
	if runRoot, ok := mount.Resolve("run_root", cfg.Mounts.RunRoot, p.Getenv); ok {
		aux = append(aux, args.AuxDir{Flag: FlagRunRootDir, Path: runRoot.Path})
	}

	final := args.Finalize(result.Args, token, ref, aux)

	l := launcher.New(cfg.Launcher)
	if p.Runner != nil {
		l = launcher.NewWithRunner(cfg.Launcher, p.Runner)
	}

	workers := l.WorkerCount(p.Getenv(envvar.GPUCount))

	code, err := l.Launch(ctx, jobCfg.Script, workers, final, p.Stdout, p.Stderr)
	if err != nil {
		slog.Error("Failed to start launch command", "binary", cfg.Launcher.Binary, "error", err)
		return ExitFailure
	}

	if code != 0 {
		slog.Error("Launch command exited with non-zero status", "status", code)
	}

	return code
}
