// Package frecency implements the history-ingestion-and-scoring pipeline:
// a bounded newest-first commit stream is filtered, folded into per-file
// scores under exponential rank decay, and ranked deterministically.
package frecency

import (
	"context"
	"time"

	"github.com/google/uuid"

	"frec/internal/logging"
	"frec/internal/paths"
	"frec/internal/ranking"
)

// CommitSource produces a lazy, finite, single-pass sequence of commit
// records ordered newest-first, rank assigned by position. It must stop
// after max records (max = 0 means the full history) and must not retain
// records after yielding them.
type CommitSource interface {
	Commits(ctx context.Context, max int, yield func(CommitRecord) error) error
}

// HeadProvider is an optional CommitSource extension for provenance
type HeadProvider interface {
	Head(ctx context.Context) (string, error)
}

// RunOptions are the per-run knobs of the pipeline
type RunOptions struct {
	MaxCommits int
	Direction  ranking.Direction
	Limit      int
}

// Provenance identifies a run for logging and JSON output
type Provenance struct {
	RunID          string `json:"runId"`
	RepoRoot       string `json:"repoRoot"`
	HeadCommit     string `json:"headCommit,omitempty"`
	CommitsScanned int    `json:"commitsScanned"`
	DurationMs     int64  `json:"durationMs"`
}

// Result is the engine's output: the ranked entries plus provenance
type Result struct {
	Entries    []ranking.Entry `json:"entries"`
	TotalCount int             `json:"totalCount"`
	Parameters DecayParams     `json:"parameters"`
	Provenance Provenance      `json:"provenance"`
}

// Engine composes the pipeline: Reader -> Filter -> Accumulator -> Ranker
type Engine struct {
	source   CommitSource
	filter   *paths.Filter
	params   DecayParams
	repoRoot string
	logger   *logging.Logger
}

// NewEngine wires a commit source, a path filter, and a decay shape into a
// runnable pipeline. The filter may be nil for pass-through.
func NewEngine(source CommitSource, filter *paths.Filter, params DecayParams, repoRoot string, logger *logging.Logger) *Engine {
	return &Engine{
		source:   source,
		filter:   filter,
		params:   params,
		repoRoot: repoRoot,
		logger:   logger,
	}
}

// Run drives the commit stream to completion and returns the ranked scores.
// Any source failure aborts the run with no partial result.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	if opts.Direction == "" {
		opts.Direction = ranking.Descending
	}
	if err := e.params.Validate(opts.MaxCommits); err != nil {
		return nil, err
	}

	e.logger.Debug("Starting frecency run", map[string]interface{}{
		"runId":      runID,
		"maxCommits": opts.MaxCommits,
		"halfLife":   e.params.HalfLife,
		"baseWeight": e.params.BaseWeight,
		"direction":  string(opts.Direction),
	})

	acc := NewAccumulator(e.params)
	scanned := 0

	err := e.source.Commits(ctx, opts.MaxCommits, func(record CommitRecord) error {
		scanned++
		if e.filter != nil {
			record.Paths = e.filter.Apply(record.Paths)
		}
		acc.Fold(record)
		return nil
	})
	if err != nil {
		e.logger.Error("Commit stream failed", map[string]interface{}{
			"runId": runID,
			"error": err.Error(),
		})
		return nil, err
	}

	entries := ranking.Rank(acc.Scores(), opts.Direction, opts.Limit)

	result := &Result{
		Entries:    entries,
		TotalCount: acc.Len(),
		Parameters: e.params,
		Provenance: Provenance{
			RunID:          runID,
			RepoRoot:       e.repoRoot,
			CommitsScanned: scanned,
			DurationMs:     time.Since(start).Milliseconds(),
		},
	}

	if hp, ok := e.source.(HeadProvider); ok {
		if head, err := hp.Head(ctx); err == nil {
			result.Provenance.HeadCommit = head
		}
	}

	e.logger.Debug("Frecency run completed", map[string]interface{}{
		"runId":    runID,
		"commits":  scanned,
		"files":    acc.Len(),
		"duration": result.Provenance.DurationMs,
	})

	return result, nil
}
