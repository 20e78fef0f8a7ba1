// Package slurm submits generated batch scripts to the cluster scheduler.
// Submission is behind a small interface so the strip workflow can be tested
// without a cluster.
package slurm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrUnexpectedOutput is returned when sbatch exits zero but its output does
// not contain a job id.
var ErrUnexpectedOutput = errors.New("unexpected sbatch output")

// Submitter queues a batch script and returns the scheduler job id.
type Submitter interface {
	Submit(ctx context.Context, scriptPath string) (string, error)
}

// CommandSubmitter submits through the sbatch command-line tool.
type CommandSubmitter struct {
	binary string
}

// NewCommandSubmitter creates a submitter invoking the given sbatch binary.
func NewCommandSubmitter(binary string) *CommandSubmitter {
	if binary == "" {
		binary = "sbatch"
	}
	return &CommandSubmitter{binary: binary}
}

// Submit runs sbatch in the script's directory so relative paths inside the
// script resolve next to it, and parses the job id from stdout.
func (s *CommandSubmitter) Submit(ctx context.Context, scriptPath string) (string, error) {
	cmd := exec.CommandContext(ctx, s.binary, filepath.Base(scriptPath))
	cmd.Dir = filepath.Dir(scriptPath)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("sbatch failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("sbatch not found (is this a cluster login node?): %w", err)
		}
		return "", fmt.Errorf("run sbatch: %w", err)
	}

	return ParseJobID(string(out))
}

// ParseJobID extracts the job id from sbatch output, which looks like
// "Submitted batch job 49229449".
func ParseJobID(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Submitted batch job") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			return fields[3], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnexpectedOutput, strings.TrimSpace(output))
}

// FakeSubmitter is a deterministic Submitter for tests and dry runs.
type FakeSubmitter struct {
	JobID string
	Err   error

	// Scripts records every submitted script path.
	Scripts []string
}

func (f *FakeSubmitter) Submit(_ context.Context, scriptPath string) (string, error) {
	f.Scripts = append(f.Scripts, scriptPath)
	if f.Err != nil {
		return "", f.Err
	}
	if f.JobID == "" {
		return "1", nil
	}
	return f.JobID, nil
}
