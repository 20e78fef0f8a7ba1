package traj

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/gbsaprep/internal/config"
	"git.home.luguber.info/inful/gbsaprep/internal/cpptraj"
	"git.home.luguber.info/inful/gbsaprep/internal/discover"
	"git.home.luguber.info/inful/gbsaprep/internal/errors"
	"git.home.luguber.info/inful/gbsaprep/internal/ledger"
	"git.home.luguber.info/inful/gbsaprep/internal/logfields"
	"git.home.luguber.info/inful/gbsaprep/internal/metrics"
	"git.home.luguber.info/inful/gbsaprep/internal/slurm"
)

// StatusWritten marks a dry run: inputs rendered and written, nothing submitted.
const StatusWritten = "written"

// Result is the outcome of processing one mutation directory.
type Result struct {
	Mutation   string
	GBSADir    string
	Topology   string
	Trajectory string
	JobID      string
	Frames     int
	Status     string // ledger.StatusSubmitted/StatusSkipped/StatusFailed or StatusWritten
	Err        error  // reason for skipped/failed results
	FrameErr   error  // non-fatal frame-count failure on an otherwise submitted job
}

// Summary accumulates results across a strip pass.
type Summary struct {
	Results []Result
}

func (s *Summary) count(status string) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *Summary) Submitted() int { return s.count(ledger.StatusSubmitted) }
func (s *Summary) Written() int   { return s.count(StatusWritten) }
func (s *Summary) Failed() int {
	return s.count(ledger.StatusSkipped) + s.count(ledger.StatusFailed)
}

// Prep runs the trajectory stripping workflow over a simulation tree.
type Prep struct {
	cfg      *config.Config
	sub      slurm.Submitter
	counter  cpptraj.FrameCounter
	led      *ledger.Store
	recorder metrics.Recorder
	dryRun   bool
}

// NewPrep creates a Prep with the real sbatch and cpptraj integrations and no
// ledger.
func NewPrep(cfg *config.Config) *Prep {
	return &Prep{
		cfg:      cfg,
		sub:      slurm.NewCommandSubmitter(cfg.Slurm.SbatchBinary),
		counter:  cpptraj.NewRunner(cfg.Strip.CpptrajBinary, cfg.CpptrajTimeoutDuration()),
		recorder: metrics.NoopRecorder{},
	}
}

// WithSubmitter replaces the scheduler integration (fakes in tests).
func (p *Prep) WithSubmitter(s slurm.Submitter) *Prep { p.sub = s; return p }

// WithCounter replaces the frame-count integration.
func (p *Prep) WithCounter(c cpptraj.FrameCounter) *Prep { p.counter = c; return p }

// WithLedger enables submission recording.
func (p *Prep) WithLedger(l *ledger.Store) *Prep { p.led = l; return p }

// WithRecorder injects a metrics recorder.
func (p *Prep) WithRecorder(r metrics.Recorder) *Prep { p.recorder = r; return p }

// DryRun writes the cpptraj input and batch script but skips submission and
// frame counting.
func (p *Prep) DryRun() *Prep { p.dryRun = true; return p }

// Run processes every analysis/gbsa directory under root sequentially. Missing
// input files and subprocess failures are per-mutation results; filesystem
// write failures abort the whole pass.
func (p *Prep) Run(ctx context.Context, root string) (*Summary, error) {
	targets, err := discover.ScanGBSA(root)
	if err != nil {
		return nil, errors.ScanFailed(root, err)
	}
	p.recorder.IncDirsDiscovered(len(targets))
	slog.Info("Mutation directories discovered", logfields.Root(root), logfields.Count(len(targets)))

	runID := ""
	if p.led != nil && !p.dryRun {
		runID, err = p.led.BeginRun(ctx)
		if err != nil {
			return nil, errors.Wrap(err, errors.CategoryLedger, errors.SeverityFatal, "begin ledger run")
		}
		slog.Debug("Ledger run started", logfields.RunID(runID))
	}

	summary := &Summary{}
	for _, t := range targets {
		res, err := p.processTarget(ctx, t)
		if err != nil {
			return summary, err
		}
		summary.Results = append(summary.Results, res)
		p.record(ctx, runID, res)
	}
	return summary, nil
}

func (p *Prep) processTarget(ctx context.Context, t discover.Target) (Result, error) {
	res := Result{Mutation: t.Mutation, GBSADir: t.GBSADir}
	slog.Info("Processing mutation", logfields.Mutation(t.Mutation), logfields.Path(t.GBSADir))

	inputs, err := LocateInputs(t.GBSADir, t.Mutation, p.cfg.Templates.Project)
	if err != nil {
		slog.Warn("Skipping mutation", logfields.Mutation(t.Mutation), logfields.Error(err))
		res.Status = ledger.StatusSkipped
		res.Err = err
		p.recorder.IncJobResult(metrics.ResultSkipped)
		return res, nil
	}
	res.Topology = inputs.Topology
	res.Trajectory = inputs.Trajectory
	slog.Info("Located inputs",
		logfields.Mutation(t.Mutation),
		slog.String("topology", inputs.Topology),
		slog.String("trajectory", inputs.Trajectory))

	inputName, scriptName, err := p.writeStripFiles(t, inputs)
	if err != nil {
		return res, err
	}
	slog.Info("Wrote stripping files",
		logfields.Mutation(t.Mutation),
		logfields.File(inputName),
		logfields.File(scriptName))

	if p.dryRun {
		res.Status = StatusWritten
		return res, nil
	}

	jobID, err := p.sub.Submit(ctx, filepath.Join(t.GBSADir, scriptName))
	if err != nil {
		slog.Warn("Submission failed", logfields.Mutation(t.Mutation), logfields.Error(err))
		res.Status = ledger.StatusFailed
		res.Err = errors.SubmitFailed(scriptName, err).WithContext("mutation", t.Mutation)
		p.recorder.IncJobResult(metrics.ResultFailed)
		return res, nil
	}
	res.JobID = jobID
	res.Status = ledger.StatusSubmitted
	p.recorder.IncJobResult(metrics.ResultSuccess)
	slog.Info("Submitted batch job", logfields.Mutation(t.Mutation), logfields.JobID(jobID))

	frames, err := p.counter.CountFrames(ctx,
		filepath.Join(t.GBSADir, inputs.Topology),
		filepath.Join(t.GBSADir, inputs.Trajectory))
	if err != nil {
		// The job is already queued; a failed count is reported, not fatal.
		slog.Warn("Frame count failed", logfields.Mutation(t.Mutation), logfields.Error(err))
		res.FrameErr = errors.FrameCountFailed(inputs.Trajectory, err)
		return res, nil
	}
	res.Frames = frames
	slog.Info("Counted trajectory frames", logfields.Mutation(t.Mutation), logfields.Frames(frames))
	return res, nil
}

// writeStripFiles renders and writes the cpptraj input and the batch script.
// Returns their basenames. Write failures are fatal to the run.
func (p *Prep) writeStripFiles(t discover.Target, inputs Inputs) (string, string, error) {
	inputName := fmt.Sprintf("strip_traj_%s.in", t.Mutation)
	scriptName := fmt.Sprintf("strip_traj_%s.sh", t.Mutation)

	data := stripData{
		Mutation:   t.Mutation,
		Topology:   inputs.Topology,
		Trajectory: inputs.Trajectory,
		Output:     fmt.Sprintf("AF-%s_%s.nc", t.Mutation, p.cfg.Strip.OutputSuffix),
		StartFrame: p.cfg.Strip.StartFrame,
		EndFrame:   p.cfg.Strip.EndFrame,
		StripMask:  p.cfg.Templates.StripMask,
		InputFile:  inputName,
		Partition:  p.cfg.Slurm.Partition,
		Nodelist:   p.cfg.Slurm.Nodelist,
		CPUs:       p.cfg.Slurm.CPUsPerTask,
		Memory:     p.cfg.Slurm.Memory,
		Modules:    p.cfg.Templates.Modules,
	}

	input, err := renderStrip("strip-input", stripInputTemplate, data)
	if err != nil {
		return "", "", errors.InternalError("template rendering failed", err)
	}
	script, err := renderStrip("strip-script", stripScriptTemplate, data)
	if err != nil {
		return "", "", errors.InternalError("template rendering failed", err)
	}

	inputPath := filepath.Join(t.GBSADir, inputName)
	if err := os.WriteFile(inputPath, []byte(input), 0o644); err != nil {
		return "", "", errors.WriteFailed(inputPath, err)
	}
	scriptPath := filepath.Join(t.GBSADir, scriptName)
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		return "", "", errors.WriteFailed(scriptPath, err)
	}
	if err := os.Chmod(scriptPath, 0o755); err != nil {
		return "", "", errors.WriteFailed(scriptPath, err)
	}
	return inputName, scriptName, nil
}

func (p *Prep) record(ctx context.Context, runID string, res Result) {
	if p.led == nil || runID == "" {
		return
	}
	detail := ""
	if res.Err != nil {
		detail = res.Err.Error()
	} else if res.FrameErr != nil {
		detail = res.FrameErr.Error()
	}
	job := ledger.Job{
		RunID:    runID,
		Mutation: res.Mutation,
		JobID:    res.JobID,
		Frames:   res.Frames,
		Status:   res.Status,
		Detail:   detail,
	}
	if err := p.led.RecordJob(ctx, job); err != nil {
		// Ledger trouble must not fail a pass that already queued jobs.
		slog.Warn("Ledger record failed", logfields.Mutation(res.Mutation), logfields.Error(err))
	}
}
