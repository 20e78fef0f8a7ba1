package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Root      string          `yaml:"root,omitempty"` // traversal root, defaults to the invocation directory
	Templates TemplatesConfig `yaml:"templates"`
	Strip     StripConfig     `yaml:"strip"`
	Slurm     SlurmConfig     `yaml:"slurm"`
	Ledger    LedgerConfig    `yaml:"ledger"`
}

// TemplatesConfig parameterizes the generated MM-GBSA input set.
type TemplatesConfig struct {
	Project          string   `yaml:"project"`           // system name used in topology/trajectory filenames
	StripMask        string   `yaml:"strip_mask"`        // cpptraj mask removed from trajectories
	ReceptorResidues string   `yaml:"receptor_residues"` // residue range of the receptor
	LigandResidues   string   `yaml:"ligand_residues"`   // residue range of the ligand
	StartFrame       int      `yaml:"start_frame"`       // MMPBSA.py startframe
	EndFrame         int      `yaml:"end_frame"`         // MMPBSA.py endframe
	Interval         int      `yaml:"interval"`
	SaltConc         float64  `yaml:"salt_concentration"`
	IGB              int      `yaml:"igb"`
	Modules          []string `yaml:"modules,omitempty"` // environment modules loaded in batch scripts
}

// StripConfig parameterizes the trajectory stripping pass.
type StripConfig struct {
	StartFrame     int    `yaml:"start_frame"` // first frame extracted (inclusive)
	EndFrame       int    `yaml:"end_frame"`   // last frame extracted (inclusive)
	OutputSuffix   string `yaml:"output_suffix"`
	CpptrajBinary  string `yaml:"cpptraj_binary"`
	CpptrajTimeout string `yaml:"cpptraj_timeout"` // duration string, e.g. "30s"
}

// SlurmConfig parameterizes generated batch scripts and submission.
type SlurmConfig struct {
	SbatchBinary string `yaml:"sbatch_binary"`
	Partition    string `yaml:"partition"`
	Nodelist     string `yaml:"nodelist,omitempty"`
	CPUsPerTask  int    `yaml:"cpus_per_task"`
	Memory       string `yaml:"memory"`
	GBSAMemory   string `yaml:"gbsa_memory"` // memory for the generated MM-GBSA.sh
}

// LedgerConfig controls the local submission ledger. The zero value means
// enabled with the default path under the traversal root.
type LedgerConfig struct {
	Disabled bool   `yaml:"disabled,omitempty"`
	Path     string `yaml:"path,omitempty"` // defaults to <root>/.gbsaprep/ledger.db
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing process env wins.
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
			}
			break
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	config := Default()
	if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadOrDefault loads the configuration file if it exists, otherwise returns
// the built-in defaults. Both tools are usable with no config file at all.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}
