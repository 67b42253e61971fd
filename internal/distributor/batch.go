package distributor

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultBatchConcurrency = 2
	// Reproduces the old two-requests-every-two-seconds pacing.
	DefaultBatchRate = 1.0
)

type BatchOptions struct {
	Concurrency int
	// Requests per second across the whole batch. Zero means DefaultBatchRate.
	RequestsPerSecond float64
	DeepScan          bool
}

// BatchAnalyze scores a list of distributors with bounded concurrency and
// a shared rate limiter pacing the outbound fetches. A distributor whose
// fetch fails is logged and excluded; the batch itself never fails.
func (a *Analyzer) BatchAnalyze(ctx context.Context, ds []Distributor, opts BatchOptions) []Intelligence {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultBatchConcurrency
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = DefaultBatchRate
	}
	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Concurrency)

	var mu sync.Mutex
	var out []Intelligence

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for _, d := range ds {
		d := d
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return nil // batch cancelled; nothing to record
			}
			intel, err := a.Analyze(gctx, d, opts.DeepScan)
			if err != nil {
				log.Printf("[distributor] analyze failed name=%q website=%s err=%v", d.Name, d.Website, err)
				return nil // best-effort: never abort the batch
			}
			mu.Lock()
			out = append(out, intel)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return out
}
