package commands

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"gbsaprep.yaml"`
	Root    string           `short:"C" help:"Traversal root (defaults to config root, then the current directory)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate MM-GBSA input files into every analysis/gbsa directory"`
	Strip    StripCmd    `cmd:"" help:"Write trajectory stripping jobs and submit them to SLURM"`
	Watch    WatchCmd    `cmd:"" help:"Watch the tree and generate inputs for analysis directories as they appear"`
	Jobs     JobsCmd     `cmd:"" help:"List strip jobs recorded in the local ledger"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration file if present, falling back to the
// built-in defaults so both tools work in an unconfigured tree.
func LoadConfig(root *CLI) (*config.Config, error) {
	return config.LoadOrDefault(root.Config)
}

// ResolveRoot determines the traversal root.
// Priority: CLI flag > config root > current directory.
func ResolveRoot(cliRoot string, cfg *config.Config) string {
	if cliRoot != "" {
		return cliRoot
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	return "."
}
