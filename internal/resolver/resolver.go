// Package resolver turns a set of candidate checkpoint sources into exactly
// one launchable reference: a local file path or a remote registry id.
package resolver

import (
	"log/slog"
	"strings"

	"github.com/cogact-team/amlrun/internal/locator"
)

// Reference is a resolved checkpoint: either a local path or a remote
// registry identifier, never both.
type Reference struct {
	local bool
	value string
}

// Local creates a reference to a checkpoint file on disk.
func Local(path string) Reference {
	return Reference{local: true, value: path}
}

// Remote creates a reference to a registry identifier.
func Remote(id string) Reference {
	return Reference{value: id}
}

// IsLocal reports whether the reference points at a file on disk.
func (r Reference) IsLocal() bool {
	return r.local
}

// String returns the path or identifier as passed to the launched process.
func (r Reference) String() string {
	return r.value
}

// Source is one prioritized place to look for a local checkpoint.
type Source struct {
	// Dir is the base directory to search; empty means the source is absent.
	Dir string

	// Description names the source in diagnostics.
	Description string
}

// Request carries everything resolution needs. Sources are tried in order
// after the explicit override; FallbackID terminates resolution when nothing
// local is found.
type Request struct {
	Override        string
	NamespacePrefix string
	Sources         []Source
	FallbackID      string
	Filenames       []string
	Layout          locator.CacheLayout
}

// Resolve produces a reference using the fallback strategy:
//
//  1. an explicit override carrying the registry namespace prefix wins
//     outright, regardless of filesystem state;
//  2. each source directory is searched in declared order, first match wins;
//  3. otherwise the fallback registry id is returned.
//
// Resolution never fails. The fallback id always terminates the search, at
// the cost of the launched process possibly downloading the model.
func Resolve(req Request) Reference {
	if req.Override != "" {
		if strings.HasPrefix(req.Override, req.NamespacePrefix) {
			slog.Info("Using user-specified registry model id", "model_id", req.Override)
			return Remote(req.Override)
		}

		// Observed behavior: a non-namespace override is discarded and the
		// normal search runs. Flagged for product clarification rather than
		// reinterpreted as a local path.
		slog.Warn("Checkpoint override does not match registry namespace, ignoring",
			"override", req.Override, "namespace_prefix", req.NamespacePrefix)
	}

	for _, source := range req.Sources {
		if source.Dir == "" {
			continue
		}

		slog.Info("Checking for checkpoint", "source", source.Description, "dir", source.Dir)
		if path, ok := locator.Locate(source.Dir, req.Filenames, req.Layout); ok {
			slog.Info("Found checkpoint", "source", source.Description, "path", path)
			return Local(path)
		}

		slog.Info("No checkpoint found", "source", source.Description, "dir", source.Dir)
	}

	slog.Info("No local checkpoint available, falling back to registry download",
		"model_id", req.FallbackID)
	return Remote(req.FallbackID)
}
