// Package mount resolves Azure ML input/output mounts from the process
// environment. It is the only place the environment is read for mount paths:
// resolution happens once at the boundary and the results travel into the
// core as plain values.
package mount

import (
	"log/slog"
	"strings"

	"github.com/cogact-team/amlrun/internal/xfs"
)

// placeholderPrefix marks an Azure ML binding expression the platform left
// unresolved. Such values must be treated as absent, not as literal paths.
const placeholderPrefix = "${{"

// Resolution is a successfully resolved logical mount.
type Resolution struct {
	// Name is the logical mount name (e.g. "dataset").
	Name string

	// Path is the live filesystem path.
	Path string

	// Source is the environment variable that supplied the path.
	Source string
}

// Resolve tries the candidate environment variables in order and returns the
// first one carrying a live filesystem path. Unset variables, unresolved
// placeholder tokens and paths that do not exist are skipped.
func Resolve(name string, candidates []string, getenv func(string) string) (Resolution, bool) {
	for _, envVar := range candidates {
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if strings.HasPrefix(value, placeholderPrefix) {
			slog.Warn("Mount variable holds an unresolved placeholder, treating as absent",
				"mount", name, "env_var", envVar)
			continue
		}

		path := xfs.ExpandTilde(value)
		if !xfs.Exists(path) {
			slog.Debug("Mount path does not exist, trying next candidate",
				"mount", name, "env_var", envVar, "path", path)
			continue
		}

		slog.Info("Resolved mount", "mount", name, "env_var", envVar, "path", path)
		return Resolution{Name: name, Path: path, Source: envVar}, true
	}

	slog.Debug("Mount not resolved", "mount", name, "candidates", candidates)
	return Resolution{}, false
}
