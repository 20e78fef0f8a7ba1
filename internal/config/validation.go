package config

import (
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/gbsaprep/internal/errors"
)

// Validate checks configuration consistency after defaults were applied.
func (c *Config) Validate() error {
	if c.Strip.StartFrame < 1 {
		return errors.ValidationFailed("strip.start_frame", "must be >= 1")
	}
	if c.Strip.EndFrame < c.Strip.StartFrame {
		return errors.ValidationFailed("strip.end_frame", "must be >= strip.start_frame")
	}
	if c.Templates.EndFrame < c.Templates.StartFrame {
		return errors.ValidationFailed("templates.end_frame", "must be >= templates.start_frame")
	}
	if c.Templates.Interval < 1 {
		return errors.ValidationFailed("templates.interval", "must be >= 1")
	}
	if c.Templates.StripMask == "" {
		return errors.ValidationFailed("templates.strip_mask", "must not be empty")
	}
	if c.Slurm.CPUsPerTask < 1 {
		return errors.ValidationFailed("slurm.cpus_per_task", "must be >= 1")
	}
	if _, err := time.ParseDuration(c.Strip.CpptrajTimeout); err != nil {
		return errors.ValidationFailed("strip.cpptraj_timeout", "must be a duration like 30s")
	}
	return nil
}

// CpptrajTimeoutDuration returns the parsed cpptraj timeout, falling back to
// 30 seconds when the configured value doesn't parse.
func (c *Config) CpptrajTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Strip.CpptrajTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LedgerPath resolves the ledger database path for the given traversal root.
func (c *Config) LedgerPath(root string) string {
	if c.Ledger.Path != "" {
		return c.Ledger.Path
	}
	return filepath.Join(root, ".gbsaprep", "ledger.db")
}
