package config

import (
	"fmt"
	"os"
)

const starterConfig = `# gbsaprep configuration
#
# Every value below has a built-in default; delete anything you don't need to
# override. ${VAR} references are expanded from the environment (.env is
# loaded first if present).

# Traversal root. Defaults to the directory gbsaprep is invoked from.
#root: /scratch/${USER}/pot1

templates:
  # System name used in topology/trajectory filenames.
  project: 1xjv_POT1_ssDNA
  # Solvent/counter-ion mask stripped before MM-GBSA.
  strip_mask: ":WAT,K+"
  receptor_residues: "1-294"
  ligand_residues: "295-304"
  start_frame: 167500
  end_frame: 177500
  interval: 1
  salt_concentration: 0.150
  igb: 5
  modules:
    - openmpi4/4.1.1
    - cuda/11.7.0
    - amber/24-cuda

strip:
  # Frame window extracted from each trajectory (inclusive).
  start_frame: 825
  end_frame: 850
  output_suffix: solv_gbsa_750
  cpptraj_binary: cpptraj
  cpptraj_timeout: 30s

slurm:
  sbatch_binary: sbatch
  partition: cisneros
  nodelist: g-02-04
  cpus_per_task: 4
  memory: 16G
  gbsa_memory: 6G

ledger:
  # Submitted jobs and frame counts are recorded in
  # <root>/.gbsaprep/ledger.db unless disabled.
  disabled: false
`

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
