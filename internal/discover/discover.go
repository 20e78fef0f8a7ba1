// Package discover walks a simulation tree and locates per-mutation analysis
// directories. A mutation directory is any directory with an immediate child
// named "analysis"; the mutation identifier is the directory's own base name.
package discover

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
)

const (
	// AnalysisDirName is the child directory that marks a mutation directory.
	AnalysisDirName = "analysis"
	// GBSADirName is the subdirectory of analysis holding MM-GBSA inputs.
	GBSADirName = "gbsa"
)

// Analysis is a discovered analysis directory and its mutation identifier.
type Analysis struct {
	Dir      string // absolute path to the analysis directory
	Mutation string // base name of the directory containing analysis
}

// GBSADir returns the gbsa subdirectory path (which may not exist yet).
func (a Analysis) GBSADir() string {
	return filepath.Join(a.Dir, GBSADirName)
}

// Target is a discovered analysis/gbsa directory ready for trajectory prep.
type Target struct {
	GBSADir  string // absolute path to the gbsa directory
	Mutation string
}

// Scan returns every analysis directory under root, in walk order. Symlinked
// directories are not descended into, so link cycles cannot loop the walk.
// Unreadable subtrees are logged and skipped.
func Scan(root string) ([]Analysis, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var found []Analysis
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == AnalysisDirName && path != absRoot {
			parent := filepath.Dir(path)
			found = append(found, Analysis{
				Dir:      path,
				Mutation: filepath.Base(parent),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ScanGBSA returns every analysis/gbsa directory under root, in walk order.
func ScanGBSA(root string) ([]Target, error) {
	analyses, err := Scan(root)
	if err != nil {
		return nil, err
	}

	var targets []Target
	for _, a := range analyses {
		gbsaDir := a.GBSADir()
		info, err := os.Stat(gbsaDir)
		if err != nil || !info.IsDir() {
			continue
		}
		targets = append(targets, Target{GBSADir: gbsaDir, Mutation: a.Mutation})
	}
	return targets, nil
}
