package config

// Config holds the main configuration for the launcher.
type Config struct {
	Version    string               `json:"version"              yaml:"version"`
	Launcher   LauncherConfig       `json:"launcher,omitempty"   yaml:"launcher,omitempty"`
	Checkpoint CheckpointConfig     `json:"checkpoint,omitempty" yaml:"checkpoint,omitempty"`
	Mounts     MountsConfig         `json:"mounts,omitempty"     yaml:"mounts,omitempty"`
	Jobs       map[string]JobConfig `json:"jobs,omitempty"       yaml:"jobs,omitempty"`
}

// LauncherConfig holds configuration for the external launch tool.
type LauncherConfig struct {
	Binary         string `json:"binary,omitempty"          yaml:"binary,omitempty"`
	DefaultWorkers int    `json:"default_workers,omitempty" yaml:"default_workers,omitempty"`
	MaxWorkers     int    `json:"max_workers,omitempty"     yaml:"max_workers,omitempty"`
}

// CheckpointConfig holds configuration for checkpoint resolution.
// Filenames is an ordered preference list: reordering it changes resolution
// outcomes, so it is part of the versioned config surface.
type CheckpointConfig struct {
	ModelID         string   `json:"model_id,omitempty"         yaml:"model_id,omitempty"`
	NamespacePrefix string   `json:"namespace_prefix,omitempty" yaml:"namespace_prefix,omitempty"`
	Filenames       []string `json:"filenames,omitempty"        yaml:"filenames,omitempty"`
	CacheModelDir   string   `json:"cache_model_dir,omitempty"  yaml:"cache_model_dir,omitempty"`
}

// MountsConfig maps each logical mount to an ordered list of environment
// variable names tried in preference order.
type MountsConfig struct {
	Dataset     []string `json:"dataset,omitempty"     yaml:"dataset,omitempty"`
	Checkpoints []string `json:"checkpoints,omitempty" yaml:"checkpoints,omitempty"`
	RunRoot     []string `json:"run_root,omitempty"    yaml:"run_root,omitempty"`
	HFCache     []string `json:"hf_cache,omitempty"    yaml:"hf_cache,omitempty"`
}

// JobConfig holds the per-variant settings. The original wrapper scripts
// differed only in the entry point they launched and whether a dataset mount
// is required; both are configuration here.
type JobConfig struct {
	Script          string `json:"script"                     yaml:"script"`
	Description     string `json:"description,omitempty"      yaml:"description,omitempty"`
	RequiresDataset bool   `json:"requires_dataset,omitempty" yaml:"requires_dataset,omitempty"`
}
