package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"git.home.luguber.info/inful/gbsaprep/internal/ledger"
	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
	"git.home.luguber.info/inful/gbsaprep/internal/traj"
)

// StripCmd implements the 'strip' command.
type StripCmd struct {
	DryRun bool `help:"Write cpptraj inputs and batch scripts without submitting or counting frames"`
}

func (s *StripCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	return RunStrip(cfg, ResolveRoot(root.Root, cfg), s.DryRun)
}

// RunStrip executes a strip pass over every analysis/gbsa directory.
// Per-mutation failures end up in the summary, not the exit status.
func RunStrip(cfg *config.Config, rootDir string, dryRun bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prep := traj.NewPrep(cfg)
	if dryRun {
		prep.DryRun()
	} else if !cfg.Ledger.Disabled {
		store, err := ledger.Open(cfg.LedgerPath(rootDir))
		if err != nil {
			// Jobs can still be submitted without a ledger; say so and go on.
			slog.Warn("Ledger unavailable, submissions will not be recorded", logfields.Error(err))
		} else {
			defer func() {
				if err := store.Close(); err != nil {
					slog.Warn("Ledger close failed", logfields.Error(err))
				}
			}()
			prep.WithLedger(store)
		}
	}

	summary, err := prep.Run(ctx, rootDir)
	if err != nil {
		return err
	}

	printStripSummary(summary, dryRun)
	return nil
}

func printStripSummary(summary *traj.Summary, dryRun bool) {
	if len(summary.Results) == 0 {
		fmt.Println("No analysis/gbsa directories found. Run 'gbsaprep generate' first.")
		return
	}

	fmt.Printf("%d directories processed", len(summary.Results))
	if dryRun {
		fmt.Printf(", %d input sets written (dry run)\n", summary.Written())
	} else {
		fmt.Printf(", %d submitted, %d failed\n", summary.Submitted(), summary.Failed())
	}

	for _, res := range summary.Results {
		switch {
		case res.Err != nil:
			fmt.Printf("  %-8s %s: %v\n", res.Mutation, res.Status, res.Err)
		case res.JobID != "":
			fmt.Printf("  %-8s submitted as job %s\n", res.Mutation, res.JobID)
		default:
			fmt.Printf("  %-8s %s\n", res.Mutation, res.Status)
		}
	}

	counted := false
	for _, res := range summary.Results {
		if res.Frames > 0 {
			if !counted {
				fmt.Println("Trajectory frame counts:")
				counted = true
			}
			fmt.Printf("  %-8s %d total frames\n", res.Mutation, res.Frames)
		}
	}
}
