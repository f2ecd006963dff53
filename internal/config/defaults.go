package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cogact-team/amlrun/internal/envvar"
)

const (
	// DefaultModelID is the registry identifier used when no local checkpoint is found.
	DefaultModelID = "CogACT/CogACT-Base"

	// DefaultNamespacePrefix marks an explicit override as a registry identifier.
	DefaultNamespacePrefix = "CogACT/"

	// DefaultBinary is the distributed launch tool.
	DefaultBinary = "torchrun"

	// DefaultWorkers is the worker count used when GPU_COUNT is unset.
	DefaultWorkers = 4

	// DefaultMaxWorkers bounds the worker count read from the environment.
	DefaultMaxWorkers = 64
)

// Default returns the built-in configuration: the train and inference job
// variants with the standard CogACT checkpoint settings.
func Default() *Config {
	return &Config{
		Version: "1",
		Launcher: LauncherConfig{
			Binary:         DefaultBinary,
			DefaultWorkers: DefaultWorkers,
			MaxWorkers:     DefaultMaxWorkers,
		},
		Checkpoint: CheckpointConfig{
			ModelID:         DefaultModelID,
			NamespacePrefix: DefaultNamespacePrefix,
			Filenames:       []string{"CogACT-Base.pt", "pytorch_model.bin", "model.safetensors"},
			CacheModelDir:   "models--CogACT--CogACT-Base",
		},
		Mounts: MountsConfig{
			Dataset:     []string{envvar.AzureInputPrefix + "dataset_dir"},
			Checkpoints: []string{envvar.AzureInputPrefix + "cogact_checkpoints", envvar.CogactCheckpoints},
			RunRoot:     []string{envvar.AzureOutputPrefix + "run_root"},
			HFCache:     []string{envvar.AzureOutputPrefix + "hf_cache", envvar.HFHome},
		},
		Jobs: map[string]JobConfig{
			"train": {
				Script:          "scripts/train.py",
				Description:     "Fine-tune CogACT with torchrun",
				RequiresDataset: true,
			},
			"inference": {
				Script:      "scripts/inference.py",
				Description: "Run CogACT inference",
			},
		},
	}
}

// DefaultConfigPath returns the default path for the amlrun config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "amlrun", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "amlrun")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "amlrun")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "amlrun")
		}
		return filepath.Join(home, ".config", "amlrun")
	}
}
