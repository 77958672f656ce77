package reconcile

import (
	"context"
	"fmt"
	"sync"

	"testset-sync/core/logger"
	"testset-sync/core/results"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs reconciliation passes: result files in, test-set statuses out.
// A pass is strictly sequential; one file is parsed and applied before the next.
type Engine struct {
	repo     Repository
	source   results.Source
	archiver Archiver
	logger   *zap.Logger

	mu    sync.Mutex
	state State
}

// NewEngine creates an engine reading result files through source.
func NewEngine(repo Repository, source results.Source, logger *zap.Logger) *Engine {
	return &Engine{
		repo:   repo,
		source: source,
		logger: logger,
		state:  StateIdle,
	}
}

// WithArchiver enables archiving of successfully processed files.
func (e *Engine) WithArchiver(a Archiver) *Engine {
	e.archiver = a
	return e
}

// State returns the lifecycle position of the current or last run.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Run performs one reconciliation pass over the files described by spec.
//
// Only a configuration problem, a file listing failure or a failed connection abort
// the run. A file that cannot be read is recorded in its FileReport and the run moves
// on to the next file.
func (e *Engine) Run(ctx context.Context, spec *Spec, opts Options) (*Report, error) {
	report := newReport(opts)
	l := logger.WithRunID(e.logger, report.RunID)

	delimiter, err := spec.Results.DelimiterRune()
	if err != nil {
		return e.fail(report), err
	}

	files, err := results.ResolveFiles(ctx, spec.Results, e.source)
	if err != nil {
		return e.fail(report), fmt.Errorf("failed to resolve result files: %w", err)
	}
	l.Info("Resolved result files", zap.Int("count", len(files)), zap.Strings("files", files))

	if err := e.connect(ctx, spec, l); err != nil {
		return e.fail(report), err
	}

	parser := results.NewParser(e.source, delimiter, l)
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return e.fail(report), err
		}

		fr := e.processFile(ctx, parser, spec, results.NewFile(name, spec.TestSetName), opts, report.RunID, l)
		report.Files = append(report.Files, fr)
		report.Summary.Add(fr)
	}

	return e.finish(report, l), nil
}

// RunMapping applies an already parsed mapping, e.g. an uploaded result file.
func (e *Engine) RunMapping(ctx context.Context, spec *Spec, opts Options, file results.File, mapping *results.Mapping, stats results.ParseStats) (*Report, error) {
	report := newReport(opts)
	l := logger.WithRunID(e.logger, report.RunID)

	if err := e.connect(ctx, spec, l); err != nil {
		return e.fail(report), err
	}

	fr := FileReport{
		Path:       file.Path,
		LookupName: file.LookupName,
		Entries:    mapping.Len(),
		Stats:      stats,
		TestSets:   []TestSetReport{},
	}
	e.applyMapping(ctx, spec, mapping, opts, &fr, l)
	report.Files = append(report.Files, fr)
	report.Summary.Add(fr)

	return e.finish(report, l), nil
}

func newReport(opts Options) *Report {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Report{
		RunID:  runID,
		DryRun: opts.DryRun,
		State:  StateIdle,
		Files:  []FileReport{},
	}
}

func (e *Engine) connect(ctx context.Context, spec *Spec, l *zap.Logger) error {
	e.setState(StateConnecting)
	if err := e.repo.Connect(ctx, spec.Credentials); err != nil {
		l.Error("Failed to connect to test repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	e.setState(StateProcessing)
	return nil
}

func (e *Engine) fail(report *Report) *Report {
	e.setState(StateFailed)
	report.State = StateFailed
	return report
}

func (e *Engine) finish(report *Report, l *zap.Logger) *Report {
	e.setState(StateDone)
	report.State = StateDone

	l.Info("Total # of tests updated",
		zap.Int("total", report.Summary.Total),
		zap.Int("files_processed", report.Summary.FilesProcessed),
		zap.Int("files_failed", report.Summary.FilesFailed),
		zap.Int("test_sets_matched", report.Summary.TestSetsMatched),
		zap.Bool("dry_run", report.DryRun),
	)
	return report
}

func (e *Engine) processFile(ctx context.Context, parser *results.Parser, spec *Spec, file results.File, opts Options, runID string, l *zap.Logger) FileReport {
	fr := FileReport{
		Path:       file.Path,
		LookupName: file.LookupName,
		TestSets:   []TestSetReport{},
	}
	fl := l.With(zap.String("file", file.Path), zap.String("test_set", file.LookupName))

	mapping, stats, err := parser.ParseFile(ctx, file.Path)
	if err != nil {
		fr.Err = err
		fr.Error = err.Error()
		fl.Error("Failed to parse result file", zap.Error(err))
		return fr
	}
	fr.Entries = mapping.Len()
	fr.Stats = stats

	e.applyMapping(ctx, spec, mapping, opts, &fr, fl)

	if fr.Err == nil && e.archiver != nil && !opts.DryRun {
		if err := e.archiver.Archive(ctx, runID, file.Path); err != nil {
			fl.Warn("Failed to archive result file", zap.Error(err))
		}
	}
	return fr
}

func (e *Engine) applyMapping(ctx context.Context, spec *Spec, mapping *results.Mapping, opts Options, fr *FileReport, l *zap.Logger) {
	sets, err := e.repo.FindTestSets(ctx, spec.Path, fr.LookupName)
	if err != nil {
		fr.Err = fmt.Errorf("failed to find test sets %q under %q: %w", fr.LookupName, spec.Path, err)
		fr.Error = fr.Err.Error()
		l.Error("Failed to find test sets", zap.Error(err))
		return
	}
	if len(sets) == 0 {
		l.Info("No test set matches result file", zap.String("path", spec.Path))
		return
	}

	for _, set := range sets {
		tsr := TestSetReport{
			ID:      set.ID,
			Path:    set.Path,
			Name:    set.Name,
			Planned: mapping.Len(),
		}

		if opts.DryRun {
			l.Info("Dry-run: results not applied", zap.Int("test_set_id", set.ID), zap.Int("planned", tsr.Planned))
			fr.TestSets = append(fr.TestSets, tsr)
			continue
		}

		applied, err := e.repo.ApplyResults(ctx, set, mapping)
		if err != nil {
			tsr.Error = err.Error()
			if fr.Err == nil {
				fr.Err = err
				fr.Error = err.Error()
			}
			l.Error("Failed to apply results", zap.Int("test_set_id", set.ID), zap.Error(err))
		} else {
			tsr.Applied = applied
			fr.Applied += applied
			l.Info("Applied results", zap.Int("test_set_id", set.ID), zap.String("test_set_path", set.Path), zap.Int("applied", applied))
		}
		fr.TestSets = append(fr.TestSets, tsr)
	}
}
