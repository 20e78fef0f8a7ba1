package cpptraj

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameCount(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    int
		wantErr bool
	}{
		{
			name:   "classic summary",
			output: "TRAJECTORIES:\n  'traj.nc' is a NetCDF trajectory, Parm p.prmtop (reading 1000 of 1000)\nRead 1000 frames and processed 1000 frames.\n",
			want:   1000,
		},
		{
			name:   "lowercase",
			output: "read 26 frames\n",
			want:   26,
		},
		{
			name:    "no summary",
			output:  "Error: Could not open trajectory\n",
			wantErr: true,
		},
		{
			name:    "read without number",
			output:  "Read frames from disk\n",
			wantErr: true,
		},
		{
			name:    "empty",
			output:  "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFrameCount(tc.output)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrNoFrameCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestRunner_Stub exercises the exec path with a stand-in cpptraj that echoes
// a summary line.
func TestRunner_Stub(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "cpptraj-stub")
	script := "#!/bin/sh\ncat > /dev/null\necho \"Read 1000 frames and processed 1000 frames.\"\n"
	require.NoError(t, os.WriteFile(stub, []byte(script), 0o755))

	n, err := NewRunner(stub, 5*time.Second).CountFrames(context.Background(), "p.prmtop", "t.nc")
	require.NoError(t, err)
	assert.Equal(t, 1000, n)
}

func TestRunner_MissingBinary(t *testing.T) {
	_, err := NewRunner("/nonexistent/cpptraj", time.Second).
		CountFrames(context.Background(), "p.prmtop", "t.nc")
	require.Error(t, err)
}

func TestRunner_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub script requires a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "cpptraj-stub")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nsleep 5\n"), 0o755))

	_, err := NewRunner(stub, 100*time.Millisecond).
		CountFrames(context.Background(), "p.prmtop", "t.nc")
	require.Error(t, err)
}

func TestFakeCounter(t *testing.T) {
	f := &FakeCounter{Frames: 750}
	n, err := f.CountFrames(context.Background(), "p.prmtop", "t.nc")
	require.NoError(t, err)
	assert.Equal(t, 750, n)
	assert.Equal(t, []string{"t.nc"}, f.Trajectories)
}
