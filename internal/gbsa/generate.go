// Package gbsa renders the fixed MM-GBSA input file set into per-mutation
// analysis/gbsa directories.
package gbsa

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"git.home.luguber.info/inful/gbsaprep/internal/discover"
	"git.home.luguber.info/inful/gbsaprep/internal/errors"
	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
	"git.home.luguber.info/inful/gbsaprep/internal/metrics"
)

// Summary reports the outcome of one generation pass.
type Summary struct {
	Processed int
	Succeeded int
	Files     int
}

// Generator writes the MM-GBSA input set for every discovered analysis directory.
type Generator struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// New creates a Generator with metrics disabled.
func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	g.recorder = r
	return g
}

// Generate scans root for analysis directories and writes the input set into
// each. Filesystem write failures abort the pass; there is nothing sensible to
// continue with when the tree is not writable.
func (g *Generator) Generate(root string) (*Summary, error) {
	start := time.Now()
	analyses, err := discover.Scan(root)
	if err != nil {
		return nil, errors.ScanFailed(root, err)
	}
	g.recorder.ObserveScanDuration(time.Since(start))
	g.recorder.IncDirsDiscovered(len(analyses))

	slog.Info("Analysis directories discovered", logfields.Root(root), logfields.Count(len(analyses)))

	summary := &Summary{}
	for _, a := range analyses {
		summary.Processed++
		n, err := g.GenerateTarget(a)
		if err != nil {
			return summary, err
		}
		summary.Succeeded++
		summary.Files += n
	}
	return summary, nil
}

// GenerateTarget ensures the gbsa subdirectory exists and writes the rendered
// file set into it. Existing files are overwritten; a second run over the same
// tree produces byte-identical output. Returns the number of files written.
func (g *Generator) GenerateTarget(a discover.Analysis) (int, error) {
	gbsaDir := a.GBSADir()
	if _, err := os.Stat(gbsaDir); os.IsNotExist(err) {
		if err := os.MkdirAll(gbsaDir, 0o750); err != nil {
			return 0, errors.WriteFailed(gbsaDir, err)
		}
		slog.Info("Created gbsa directory", logfields.Mutation(a.Mutation), logfields.Path(gbsaDir))
	} else {
		slog.Info("Reusing gbsa directory", logfields.Mutation(a.Mutation), logfields.Path(gbsaDir))
	}

	data := NewTemplateData(g.cfg, a.Mutation)
	written := 0
	for _, tpl := range Templates() {
		name, content, err := tpl.Render(data)
		if err != nil {
			return written, errors.InternalError("template rendering failed", err).
				WithContext("template", tpl.Name)
		}
		path := filepath.Join(gbsaDir, name)
		if err := os.WriteFile(path, []byte(content), tpl.Mode); err != nil {
			return written, errors.WriteFailed(path, err)
		}
		// WriteFile does not change the mode of pre-existing files.
		if err := os.Chmod(path, tpl.Mode); err != nil {
			return written, errors.WriteFailed(path, err)
		}
		written++
		g.recorder.IncFilesGenerated(1)
		slog.Info("Generated file", logfields.Mutation(a.Mutation), logfields.File(name))
	}
	return written, nil
}
