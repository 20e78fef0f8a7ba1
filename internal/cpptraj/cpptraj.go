// Package cpptraj drives the cpptraj trajectory-analysis tool as a subprocess.
// Only frame counting is implemented here; the heavier stripping work runs on
// the cluster through the generated batch scripts.
package cpptraj

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrNoFrameCount is returned when cpptraj output contains no recognizable
// frame count line.
var ErrNoFrameCount = errors.New("no frame count in cpptraj output")

// FrameCounter reports the number of frames in a trajectory.
type FrameCounter interface {
	CountFrames(ctx context.Context, topology, trajectory string) (int, error)
}

// Runner is a FrameCounter invoking the cpptraj binary.
type Runner struct {
	binary  string
	timeout time.Duration
}

// NewRunner creates a Runner for the given cpptraj binary and per-invocation timeout.
func NewRunner(binary string, timeout time.Duration) *Runner {
	if binary == "" {
		binary = "cpptraj"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{binary: binary, timeout: timeout}
}

// CountFrames feeds cpptraj a minimal parm/trajin/run script on stdin and
// parses the reported frame count from its output.
func (r *Runner) CountFrames(ctx context.Context, topology, trajectory string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	script := fmt.Sprintf("parm %s\ntrajin %s\nrun\n", topology, trajectory)

	cmd := exec.CommandContext(ctx, r.binary)
	cmd.Stdin = strings.NewReader(script)

	out, err := cmd.Output()
	if err != nil && len(out) == 0 {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("cpptraj timed out after %s", r.timeout)
		}
		return 0, fmt.Errorf("run cpptraj: %w", err)
	}

	// cpptraj can exit non-zero after printing the trajectory summary, so the
	// output is parsed regardless of exit status.
	return ParseFrameCount(string(out))
}

// ParseFrameCount scans cpptraj output for the trajectory summary line, which
// looks like "  Coordinate processing will occur on 1000 frames." or
// "Read 1000 frames ...", and returns the integer after "read".
func ParseFrameCount(output string) (int, error) {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "frames") || !strings.Contains(lower, "read") {
			continue
		}
		words := strings.Fields(line)
		for i, word := range words {
			if strings.ToLower(word) != "read" || i+1 >= len(words) {
				continue
			}
			if n, err := strconv.Atoi(words[i+1]); err == nil {
				return n, nil
			}
		}
	}
	return 0, ErrNoFrameCount
}

// FakeCounter is a deterministic FrameCounter for tests and dry runs.
type FakeCounter struct {
	Frames int
	Err    error

	// Trajectories records every counted trajectory path.
	Trajectories []string
}

func (f *FakeCounter) CountFrames(_ context.Context, _, trajectory string) (int, error) {
	f.Trajectories = append(f.Trajectories, trajectory)
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Frames, nil
}
