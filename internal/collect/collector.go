package collect

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/faithmap/faithmap/internal/model"
)

// defaultBatchSize is the number of targets searched concurrently.
const defaultBatchSize = 20

// Result summarizes a collection run.
type Result struct {
	RunID      string
	Facilities []model.Facility
	Targets    int
	Failed     int
	Elapsed    time.Duration
}

// Collector runs targets against a set of sources.
type Collector struct {
	sources   []Source
	batchSize int
}

// NewCollector creates a Collector. batchSize <= 0 uses the default of 20.
func NewCollector(sources []Source, batchSize int) *Collector {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Collector{sources: sources, batchSize: batchSize}
}

// Run searches every target with every source. Targets are processed in
// sequential batches whose members run concurrently; results keep target
// order. A failed (target, source) pair is logged and skipped. Only context
// cancellation aborts the run.
func (c *Collector) Run(ctx context.Context, targets []Target) (*Result, error) {
	if len(c.sources) == 0 {
		return nil, eris.New("collect: no sources selected")
	}

	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Targets: len(targets)}
	log := zap.L().With(zap.String("component", "collect"), zap.String("run_id", res.RunID))
	log.Info("collection started",
		zap.Int("targets", len(targets)),
		zap.Int("batch_size", c.batchSize),
		zap.Int("sources", len(c.sources)),
	)

	var failed atomic.Int64
	for i := 0; i < len(targets); i += c.batchSize {
		end := min(i+c.batchSize, len(targets))
		batch := targets[i:end]
		found := make([][]model.Facility, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for j, t := range batch {
			g.Go(func() error {
				for _, src := range c.sources {
					items, err := src.Search(gctx, t)
					if err != nil {
						if gctx.Err() != nil {
							return gctx.Err()
						}
						failed.Add(1)
						log.Warn("search failed",
							zap.String("source", src.Name()),
							zap.String("query", t.Query()),
							zap.Error(err),
						)
						continue
					}
					found[j] = append(found[j], items...)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "collect: run cancelled")
		}

		for _, items := range found {
			res.Facilities = append(res.Facilities, items...)
		}

		log.Info("progress",
			zap.Int("done", end),
			zap.Int("total", len(targets)),
			zap.Float64("percent", math.Round(float64(end)/float64(len(targets))*1000)/10),
			zap.Int("facilities", len(res.Facilities)),
		)
	}

	res.Failed = int(failed.Load())
	res.Elapsed = time.Since(start)
	log.Info("collection finished",
		zap.Int("facilities", len(res.Facilities)),
		zap.Int("failed", res.Failed),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
