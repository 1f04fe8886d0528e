package links

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/symlink"
)

// RunnerOptions configures a Runner
type RunnerOptions struct {
	DryRun        bool
	CreateParents bool

	// Reconciler options applied after the ones derived above
	Extra []symlink.Option
}

// Runner reconciles pairs sequentially
type Runner struct {
	reconciler *symlink.Reconciler
	dryRun     bool
	logger     zerolog.Logger
	now        func() time.Time
}

// NewRunner creates a Runner over the OS filesystem unless Extra says otherwise
func NewRunner(opts RunnerOptions) *Runner {
	logger := logging.GetLogger("links")
	recOpts := append([]symlink.Option{
		symlink.WithDryRun(opts.DryRun),
		symlink.WithCreateParents(opts.CreateParents),
	}, opts.Extra...)

	return &Runner{
		reconciler: symlink.New(recOpts...),
		dryRun:     opts.DryRun,
		logger:     logger,
		now:        time.Now,
	}
}

// Run ensures every pair is linked. A failure is recorded and the run
// continues with the next pair.
func (r *Runner) Run(pairs []Pair) *Report {
	return r.each("link", pairs, r.reconciler.Ensure)
}

// Status inspects every pair without changing anything
func (r *Runner) Status(pairs []Pair) *Report {
	return r.each("status", pairs, r.reconciler.Inspect)
}

func (r *Runner) each(command string, pairs []Pair, fn func(original, link string) (*symlink.Result, error)) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Command:   command,
		DryRun:    r.dryRun && command == "link",
		StartedAt: r.now(),
		Results:   make([]Entry, 0, len(pairs)),
	}

	logger := r.logger.With().Str("run_id", report.RunID).Logger()
	done := logging.LogOperationStart(logger, command)
	defer done()

	for _, pair := range pairs {
		result, err := fn(pair.Original, pair.Link)
		if err != nil {
			logger.Error().
				Err(err).
				Str("name", pair.Name).
				Str("original", pair.Original).
				Str("link", pair.Link).
				Msg("Failed to reconcile link")
		}
		report.add(pair, result, err)
	}

	logger.Info().
		Int("total", len(pairs)).
		Int("changed", report.Changed()).
		Int("failed", report.Failed).
		Msgf("%s finished", command)
	return report
}
