// Command amlrun prepares and launches CogACT fine-tuning and inference jobs
// on Azure ML: it resolves the pretrained checkpoint from the mounted
// datastores (falling back to a registry download), rewrites the user
// arguments, and hands off to torchrun.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cogact-team/amlrun/internal/config"
	"github.com/cogact-team/amlrun/internal/env"
	"github.com/cogact-team/amlrun/internal/envvar"
	"github.com/cogact-team/amlrun/internal/job"
	"github.com/cogact-team/amlrun/internal/logger"
)

func main() {
	environment := env.FromEnv()

	var opts []logger.Option
	if logFile := os.Getenv(envvar.AmlrunLogFile); logFile != "" {
		opts = append(opts, logger.WithLogToFile(true), logger.WithLogFile(logFile))
	}
	slog.SetDefault(logger.New(environment, opts...))

	os.Exit(run(os.Args[1:]))
}

// run encapsulates the main application logic so exit codes flow out of one
// place.
func run(argv []string) int {
	cfg, err := config.Load(configPath())
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return job.ExitFailure
	}

	exitCode := 0

	root := &cobra.Command{
		Use:           "amlrun",
		Short:         "Launch CogACT training and inference jobs on Azure ML",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	for name, jobCfg := range cfg.Jobs {
		root.AddCommand(newJobCommand(cfg, name, jobCfg, &exitCode))
	}

	root.SetArgs(argv)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return job.ExitFailure
	}

	return exitCode
}

// newJobCommand builds the subcommand for one job profile. Flag parsing is
// disabled: every token after the job name belongs to the argument pipeline,
// which forwards unrecognized flags to the training script untouched.
func newJobCommand(cfg *config.Config, name string, jobCfg config.JobConfig, exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [training args...]",
		Short:              jobCfg.Description,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			*exitCode = job.Run(cmd.Context(), job.Params{
				Config:  cfg,
				Name:    name,
				RawArgs: cmdArgs,
				Getenv:  os.Getenv,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			})
			return nil
		},
	}
}

// configPath returns the config file to load: the AMLRUN_CONFIG override, or
// config.yaml under the default config directory.
func configPath() string {
	if path := os.Getenv(envvar.AmlrunConfig); path != "" {
		return path
	}

	return filepath.Join(config.DefaultConfigPath(), "config.yaml")
}
