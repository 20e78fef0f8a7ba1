// Package traj prepares trajectory frame-stripping jobs: it locates topology
// and trajectory files in analysis/gbsa directories, renders cpptraj input and
// SLURM batch scripts, submits them, and reports trajectory frame counts.
package traj

import (
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/gbsaprep/internal/errors"
)

// Inputs are the files a stripping job consumes, as basenames within the gbsa
// directory. Generated scripts reference them relatively so the directory can
// move between filesystems.
type Inputs struct {
	Topology   string
	Trajectory string
}

// LocateInputs resolves the topology and trajectory files for one mutation.
// Patterns are tried most specific first; the first match wins. Trajectories
// produced by earlier stripping runs (AF- prefix) are never picked up again.
func LocateInputs(gbsaDir, mutation, project string) (Inputs, error) {
	topologyPatterns := []string{
		fmt.Sprintf("strip.%s-%s_wat.prmtop", project, mutation),
		fmt.Sprintf("%s-%s_wat.prmtop", project, mutation),
		fmt.Sprintf("%s_wat.prmtop", mutation),
		"strip.*.prmtop",
		"*.prmtop",
	}
	topology := firstMatch(gbsaDir, topologyPatterns, nil)
	if topology == "" {
		return Inputs{}, errors.TopologyNotFound(gbsaDir).WithContext("mutation", mutation)
	}

	trajectoryPatterns := []string{
		fmt.Sprintf("%s-%s_wat_imaged_*.nc", project, mutation),
		fmt.Sprintf("*%s*.nc", mutation),
		"*.nc",
	}
	trajectory := firstMatch(gbsaDir, trajectoryPatterns, isSourceTrajectory)
	if trajectory == "" {
		return Inputs{}, errors.TrajectoryNotFound(gbsaDir).WithContext("mutation", mutation)
	}

	return Inputs{Topology: topology, Trajectory: trajectory}, nil
}

// firstMatch globs each pattern in order and returns the basename of the first
// accepted match. Glob results are sorted, so ties resolve deterministically.
func firstMatch(dir string, patterns []string, accept func(name string) bool) string {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		for _, m := range matches {
			name := filepath.Base(m)
			if accept == nil || accept(name) {
				return name
			}
		}
	}
	return ""
}

// isSourceTrajectory rejects stripping outputs and accepts only trajectories
// that look like simulation output (imaged) or MM-GBSA staging files.
func isSourceTrajectory(name string) bool {
	if strings.Contains(name, "AF-") {
		return false
	}
	return strings.Contains(name, "imaged") || strings.Contains(name, "gbsa")
}
