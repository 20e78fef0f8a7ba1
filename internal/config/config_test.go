package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "1xjv_POT1_ssDNA", cfg.Templates.Project)
	assert.Equal(t, ":WAT,K+", cfg.Templates.StripMask)
	assert.Equal(t, "1-294", cfg.Templates.ReceptorResidues)
	assert.Equal(t, "295-304", cfg.Templates.LigandResidues)
	assert.Equal(t, 825, cfg.Strip.StartFrame)
	assert.Equal(t, 850, cfg.Strip.EndFrame)
	assert.Equal(t, 4, cfg.Slurm.CPUsPerTask)
	assert.Equal(t, "16G", cfg.Slurm.Memory)
	assert.Equal(t, 30*time.Second, cfg.CpptrajTimeoutDuration())
	assert.False(t, cfg.Ledger.Disabled)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gbsaprep.yaml")
	content := `
root: /scratch/pot1
strip:
  start_frame: 100
  end_frame: 200
slurm:
  partition: gpu
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/scratch/pot1", cfg.Root)
	assert.Equal(t, 100, cfg.Strip.StartFrame)
	assert.Equal(t, 200, cfg.Strip.EndFrame)
	assert.Equal(t, "gpu", cfg.Slurm.Partition)
	// Untouched sections still get defaults.
	assert.Equal(t, "cpptraj", cfg.Strip.CpptrajBinary)
	assert.Equal(t, ":WAT,K+", cfg.Templates.StripMask)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("GBSAPREP_TEST_ROOT", "/exp/root")

	dir := t.TempDir()
	path := filepath.Join(dir, "gbsaprep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ${GBSAPREP_TEST_ROOT}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/exp/root", cfg.Root)
}

func TestLoad_InvalidFrameRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gbsaprep.yaml")
	content := `
strip:
  start_frame: 900
  end_frame: 850
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLedgerPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/proj", ".gbsaprep", "ledger.db"), cfg.LedgerPath("/proj"))

	cfg.Ledger.Path = "/elsewhere/jobs.db"
	assert.Equal(t, "/elsewhere/jobs.db", cfg.LedgerPath("/proj"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gbsaprep.yaml")

	require.NoError(t, Init(path, false))

	// Starter file must load cleanly and reproduce the defaults.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 825, cfg.Strip.StartFrame)
	assert.Equal(t, "cisneros", cfg.Slurm.Partition)

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
