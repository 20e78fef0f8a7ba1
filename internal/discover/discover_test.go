package discover

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o750))
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "Q94R", "analysis"),
		filepath.Join(root, "WT", "analysis"),
		filepath.Join(root, "Y36C", "equilibration"), // no analysis child
		filepath.Join(root, "notes"),
	)
	// Sibling files must not affect discovery.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Q94R", "readme.txt"), []byte("x"), 0o644))

	found, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, found, 2)

	// WalkDir is lexical, so order is deterministic.
	assert.Equal(t, "Q94R", found[0].Mutation)
	assert.Equal(t, filepath.Join(root, "Q94R", "analysis"), found[0].Dir)
	assert.Equal(t, "WT", found[1].Mutation)
	assert.Equal(t, filepath.Join(root, "WT", "analysis"), found[1].Dir)
}

func TestScan_Empty(t *testing.T) {
	found, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestScan_Nested(t *testing.T) {
	root := t.TempDir()
	// Mutation directories can sit at any depth.
	mkdirs(t, filepath.Join(root, "batch1", "Q94R", "analysis"))

	found, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Q94R", found[0].Mutation)
}

func TestScan_SymlinkNotFollowed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks not reliable on windows")
	}
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "Q94R", "analysis"))
	// A cycle back to the root must not loop or duplicate results.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "Q94R", "loop")))

	found, err := Scan(root)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestGBSADir(t *testing.T) {
	a := Analysis{Dir: "/proj/Q94R/analysis", Mutation: "Q94R"}
	assert.Equal(t, filepath.Join("/proj/Q94R/analysis", "gbsa"), a.GBSADir())
}

func TestScanGBSA(t *testing.T) {
	root := t.TempDir()
	mkdirs(t,
		filepath.Join(root, "Q94R", "analysis", "gbsa"),
		filepath.Join(root, "WT", "analysis"), // no gbsa yet
	)

	targets, err := ScanGBSA(root)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "Q94R", targets[0].Mutation)
	assert.Equal(t, filepath.Join(root, "Q94R", "analysis", "gbsa"), targets[0].GBSADir)
}
