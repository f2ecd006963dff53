package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

// The schema ships inside the binary: the launcher runs inside container
// jobs where nothing is installed next to it.
//
//go:embed amlrun.v1.schema.json
var schemaJSON string

// Load returns the configuration to use for a run. An empty path or a
// missing file yields the built-in defaults; an existing file is loaded,
// validated and merged over the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}

	return LoadAndValidate(path)
}

// LoadAndValidate loads and validates the configuration file.
func LoadAndValidate(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("amlrun: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("amlrun: config validation failed: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("amlrun: failed to unmarshal into Config struct: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("amlrun.v1.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("amlrun: failed to load schema: %w", err)
	}

	schema, err := compiler.Compile("amlrun.v1.schema.json")
	if err != nil {
		return nil, fmt.Errorf("amlrun: failed to compile schema: %w", err)
	}

	return schema, nil
}

// applyDefaults fills fields the file left unset from the built-in defaults.
func applyDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	if cfg.Launcher.Binary == "" {
		cfg.Launcher.Binary = defaults.Launcher.Binary
	}
	if cfg.Launcher.DefaultWorkers == 0 {
		cfg.Launcher.DefaultWorkers = defaults.Launcher.DefaultWorkers
	}
	if cfg.Launcher.MaxWorkers == 0 {
		cfg.Launcher.MaxWorkers = defaults.Launcher.MaxWorkers
	}

	if cfg.Checkpoint.ModelID == "" {
		cfg.Checkpoint.ModelID = defaults.Checkpoint.ModelID
	}
	if cfg.Checkpoint.NamespacePrefix == "" {
		cfg.Checkpoint.NamespacePrefix = defaults.Checkpoint.NamespacePrefix
	}
	if len(cfg.Checkpoint.Filenames) == 0 {
		cfg.Checkpoint.Filenames = defaults.Checkpoint.Filenames
	}
	if cfg.Checkpoint.CacheModelDir == "" {
		cfg.Checkpoint.CacheModelDir = defaults.Checkpoint.CacheModelDir
	}

	if len(cfg.Mounts.Dataset) == 0 {
		cfg.Mounts.Dataset = defaults.Mounts.Dataset
	}
	if len(cfg.Mounts.Checkpoints) == 0 {
		cfg.Mounts.Checkpoints = defaults.Mounts.Checkpoints
	}
	if len(cfg.Mounts.RunRoot) == 0 {
		cfg.Mounts.RunRoot = defaults.Mounts.RunRoot
	}
	if len(cfg.Mounts.HFCache) == 0 {
		cfg.Mounts.HFCache = defaults.Mounts.HFCache
	}

	if len(cfg.Jobs) == 0 {
		cfg.Jobs = defaults.Jobs
	}
}
