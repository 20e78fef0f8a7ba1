package gbsa

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"git.home.luguber.info/inful/gbsaprep/internal/discover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T, mutations ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, m := range mutations {
		require.NoError(t, os.MkdirAll(filepath.Join(root, m, "analysis"), 0o750))
	}
	return root
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if info.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		files[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestGenerate_EndToEnd(t *testing.T) {
	root := setupTree(t, "Q94R", "WT")

	summary, err := New(config.Default()).Generate(root)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 12, summary.Files)

	for _, m := range []string{"Q94R", "WT"} {
		gbsaDir := filepath.Join(root, m, "analysis", "gbsa")
		entries, err := os.ReadDir(gbsaDir)
		require.NoError(t, err)
		assert.Len(t, entries, 6, "six files under %s", gbsaDir)

		data, err := os.ReadFile(filepath.Join(gbsaDir, "pt-strip-"+m+".in"))
		require.NoError(t, err)
		assert.Contains(t, string(data), m)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	root := setupTree(t, "Q94R")
	gen := New(config.Default())

	_, err := gen.Generate(root)
	require.NoError(t, err)
	first := readTree(t, root)

	summary, err := gen.Generate(root)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)

	assert.Equal(t, first, readTree(t, root), "second run must be byte-identical")
}

func TestGenerate_EmptyTree(t *testing.T) {
	summary, err := New(config.Default()).Generate(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
}

func TestGenerateTarget_ScriptExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes not meaningful on windows")
	}
	root := setupTree(t, "Q94R")
	a := discover.Analysis{Dir: filepath.Join(root, "Q94R", "analysis"), Mutation: "Q94R"}

	n, err := New(config.Default()).GenerateTarget(a)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	info, err := os.Stat(filepath.Join(a.GBSADir(), "MM-GBSA.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestGenerateTarget_ReusesExistingDir(t *testing.T) {
	root := setupTree(t, "Q94R")
	a := discover.Analysis{Dir: filepath.Join(root, "Q94R", "analysis"), Mutation: "Q94R"}
	require.NoError(t, os.MkdirAll(a.GBSADir(), 0o750))
	// A pre-existing unrelated file survives generation.
	keep := filepath.Join(a.GBSADir(), "notes.txt")
	require.NoError(t, os.WriteFile(keep, []byte("keep"), 0o644))

	_, err := New(config.Default()).GenerateTarget(a)
	require.NoError(t, err)

	data, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
