// Package locator finds checkpoint files beneath a base directory, probing a
// fixed preference order of filenames plus the HuggingFace cache layout.
package locator

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cogact-team/amlrun/internal/xfs"
)

// snapshotsDir is the fixed directory name inside a cached model tree.
const snapshotsDir = "snapshots"

// checkpointsDir is the optional subdirectory inside each snapshot.
const checkpointsDir = "checkpoints"

// CacheLayout describes the vendor cache tree probed underneath a base
// directory: base/<ModelDir>/snapshots/<id>/ plus an optional checkpoints/
// subdirectory per snapshot.
type CacheLayout struct {
	// ModelDir is the cache directory for the model, e.g.
	// "models--CogACT--CogACT-Base".
	ModelDir string
}

// Locate returns the first existing checkpoint underneath baseDir, probing
// candidates in a fixed order: each filename directly under baseDir, then the
// same filenames under every cache snapshot, then under each snapshot's
// checkpoints/ subdirectory. Snapshots are visited in lexicographic order of
// snapshot id; reordering changes which of several cached snapshots wins.
//
// A missing or empty baseDir is not an error; Locate reports not found.
func Locate(baseDir string, filenames []string, layout CacheLayout) (string, bool) {
	if baseDir == "" || !xfs.Exists(baseDir) {
		return "", false
	}

	candidates := candidatePaths(baseDir, filenames, layout)

	var match string
	for _, path := range candidates {
		exists := xfs.Exists(path)
		slog.Debug("Checking checkpoint candidate", "path", path, "exists", exists)
		if exists && match == "" {
			match = path
		}
	}

	return match, match != ""
}

// candidatePaths builds the ordered candidate list for baseDir.
func candidatePaths(baseDir string, filenames []string, layout CacheLayout) []string {
	var candidates []string

	for _, filename := range filenames {
		candidates = append(candidates, filepath.Join(baseDir, filename))
	}

	if layout.ModelDir == "" {
		return candidates
	}

	snapshots := filepath.Join(baseDir, layout.ModelDir, snapshotsDir)
	for _, snapshot := range listDirs(snapshots) {
		for _, filename := range filenames {
			candidates = append(candidates, filepath.Join(snapshot, filename))
		}

		subdir := filepath.Join(snapshot, checkpointsDir)
		if xfs.IsDir(subdir) {
			for _, filename := range filenames {
				candidates = append(candidates, filepath.Join(subdir, filename))
			}
		}
	}

	return candidates
}

// listDirs returns the subdirectories of dir in lexicographic name order.
// Enumeration errors degrade to an empty listing so a broken cache tree
// cannot abort resolution.
func listDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to enumerate cache directory, skipping", "dir", dir, "error", err)
		}
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}

	return dirs
}
