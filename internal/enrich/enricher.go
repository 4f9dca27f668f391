package enrich

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/faithmap/faithmap/internal/model"
)

// Defaults for a run.
const (
	DefaultBatchSize    = 15
	DefaultSaveInterval = 500
)

// Fetcher is satisfied by Chain.
type Fetcher interface {
	Fetch(ctx context.Context, f model.Facility) (*Detail, error)
}

// CheckpointFunc persists progress: processed items followed by the
// untouched remainder.
type CheckpointFunc func(ctx context.Context, processed, remaining []model.Facility) error

// Options controls a run.
type Options struct {
	// Label names the run in logs, usually the snapshot file.
	Label        string
	BatchSize    int
	SaveInterval int
	// Timeout bounds a single item fetch. Zero means no per-item bound.
	Timeout time.Duration
	// OnlyMissing skips facilities that already have a website or have no
	// detail page.
	OnlyMissing bool
	Checkpoint  CheckpointFunc
}

// Stats summarizes a run.
type Stats struct {
	Total       int
	Attempted   int
	Updated     int
	Failed      int
	WithWebsite int
	Checkpoints int
	Elapsed     time.Duration
}

// Enricher fetches details for facility lists.
type Enricher struct {
	fetcher Fetcher
}

// New creates an Enricher.
func New(f Fetcher) *Enricher {
	return &Enricher{fetcher: f}
}

// Wanted reports whether a facility still lacks a website but can be
// looked up.
func Wanted(f model.Facility) bool {
	return f.Website == "" && f.KakaoURL != ""
}

// Run enriches list in sequential batches whose members are fetched
// concurrently. Per-item failures are logged and leave the item unchanged.
// The checkpoint callback fires each time the processed count crosses a
// multiple of SaveInterval, and once more if the run is cancelled. The
// returned list has the same length and order as the input.
func (e *Enricher) Run(ctx context.Context, list []model.Facility, opts Options) ([]model.Facility, *Stats, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = DefaultSaveInterval
	}

	log := zap.L().With(zap.String("component", "enrich"), zap.String("label", opts.Label))
	start := time.Now()
	stats := &Stats{Total: len(list)}
	results := make([]model.Facility, 0, len(list))

	for i := 0; i < len(list); i += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			e.checkpoint(ctx, opts, results, list[len(results):], stats, log)
			return results, stats, eris.Wrap(err, "enrich: run cancelled")
		}

		end := min(i+opts.BatchSize, len(list))
		batch := make([]model.Facility, end-i)
		for j := range batch {
			batch[j] = list[i+j].Clone()
		}
		outcome := make([]itemOutcome, len(batch))

		var g errgroup.Group
		for j := range batch {
			if opts.OnlyMissing && !Wanted(batch[j]) {
				continue
			}
			g.Go(func() error {
				outcome[j] = e.enrichOne(ctx, &batch[j], opts.Timeout, log)
				return nil
			})
		}
		_ = g.Wait()

		for _, o := range outcome {
			if o.attempted {
				stats.Attempted++
			}
			if o.failed {
				stats.Failed++
			}
			if o.updated {
				stats.Updated++
			}
		}
		before := len(results)
		results = append(results, batch...)

		for _, f := range batch {
			if f.Website != "" {
				stats.WithWebsite++
			}
		}
		log.Info("progress",
			zap.Int("done", len(results)),
			zap.Int("total", len(list)),
			zap.Int("with_website", stats.WithWebsite),
			zap.Duration("elapsed", time.Since(start)),
		)

		if len(results)/opts.SaveInterval > before/opts.SaveInterval && len(results) < len(list) {
			if err := e.checkpoint(ctx, opts, results, list[len(results):], stats, log); err != nil {
				return results, stats, err
			}
		}
	}

	stats.Elapsed = time.Since(start)
	log.Info("enrichment finished",
		zap.Int("total", stats.Total),
		zap.Int("attempted", stats.Attempted),
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
		zap.Int("with_website", stats.WithWebsite),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return results, stats, nil
}

type itemOutcome struct {
	attempted bool
	failed    bool
	updated   bool
}

func (e *Enricher) enrichOne(ctx context.Context, f *model.Facility, timeout time.Duration, log *zap.Logger) itemOutcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	d, err := e.fetcher.Fetch(ctx, *f)
	if err != nil {
		log.Debug("detail fetch failed", zap.String("id", f.ID), zap.String("name", f.Name), zap.Error(err))
		return itemOutcome{attempted: true, failed: true}
	}
	return itemOutcome{attempted: true, updated: Apply(f, d)}
}

func (e *Enricher) checkpoint(ctx context.Context, opts Options, processed, remaining []model.Facility, stats *Stats, log *zap.Logger) error {
	if opts.Checkpoint == nil {
		return nil
	}
	// Persist even when ctx is already cancelled.
	if err := opts.Checkpoint(context.WithoutCancel(ctx), processed, remaining); err != nil {
		return eris.Wrap(err, "enrich: checkpoint")
	}
	stats.Checkpoints++
	log.Info("checkpoint saved", zap.Int("processed", len(processed)))
	return nil
}
