package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/gbsaprep/internal/ledger"
)

// JobsCmd implements the 'jobs' command.
type JobsCmd struct {
	Limit int `short:"n" help:"Maximum number of entries to show (0 for all)" default:"20"`
}

func (j *JobsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	rootDir := ResolveRoot(root.Root, cfg)

	path := cfg.LedgerPath(rootDir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("No ledger at %s. Run 'gbsaprep strip' first.\n", path)
		return nil
	}

	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.ListJobs(context.Background(), j.Limit)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No recorded jobs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tMUTATION\tSTATUS\tJOB\tFRAMES\tDETAIL")
	for _, job := range jobs {
		frames := ""
		if job.Frames > 0 {
			frames = fmt.Sprintf("%d", job.Frames)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			job.Created.Format("2006-01-02 15:04"),
			job.Mutation, job.Status, job.JobID, frames, job.Detail)
	}
	return w.Flush()
}
