package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/tradelab/indicore/pkg/cache"
	"github.com/tradelab/indicore/pkg/indicator"
	"github.com/tradelab/indicore/pkg/metrics"
	"github.com/tradelab/indicore/pkg/types"
)

var log = logrus.WithField("component", "engine")

// Result is the evaluation of one mounted indicator.
type Result struct {
	Mount      indicator.Mount
	Output     indicator.Output
	Components []types.Component

	// Cached is true when the output came from the cache.
	Cached   bool
	Duration time.Duration
}

// Engine evaluates the mounted indicators of a strategy against a price series.
// Mounts are independent, so they are evaluated concurrently.
type Engine struct {
	cache       *cache.OutputCache
	concurrency int
}

type Option func(e *Engine)

// WithCache memoizes outputs across Evaluate calls.
func WithCache(c *cache.OutputCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithConcurrency limits the number of calculators running at the same time.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func New(options ...Option) *Engine {
	e := &Engine{concurrency: runtime.NumCPU()}
	for _, option := range options {
		option(e)
	}
	return e
}

// Evaluate runs every mount and returns the results in mount order.
// The context is checked before each calculator starts; a running calculator is
// never interrupted.
func (e *Engine) Evaluate(ctx context.Context, prices *types.PriceSeries, mounts []indicator.Mount) ([]Result, error) {
	if err := prices.Validate(); err != nil {
		return nil, err
	}

	if err := checkMounts(mounts); err != nil {
		return nil, err
	}

	var fingerprint uint64
	if e.cache != nil {
		fingerprint = cache.Fingerprint(prices)
	}

	results := make([]Result, len(mounts))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)
	for i, m := range mounts {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			results[i] = e.evaluate(m, prices, fingerprint)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (e *Engine) evaluate(m indicator.Mount, prices *types.PriceSeries, fingerprint uint64) Result {
	name, slot := m.Indicator.Name(), m.Slot.String()
	logger := log.WithFields(logrus.Fields{"indicator": m.Indicator.String(), "slot": slot})

	start := time.Now()

	var output indicator.Output
	var cached bool
	if e.cache != nil {
		output, cached = e.cache.Calculate(m.Indicator, prices, fingerprint)
	} else {
		output = m.Indicator.Calculate(prices)
	}

	duration := time.Since(start)
	if cached {
		metrics.ObserveCacheHit(name, slot)
		logger.Debugf("served from cache")
	} else {
		metrics.ObserveCalculation(name, slot, prices.Bars(), duration)
		logger.Debugf("calculated %d bars in %s", prices.Bars(), duration)
	}

	components := output.Components(m.Slot)
	if last := prices.Bars() - 1; last >= 0 {
		for _, c := range components {
			if c.Role.IsSignal() {
				metrics.SetLastSignal(name, slot, c.Role.String(), c.Values[last])
			}
		}
	}

	return Result{
		Mount:      m,
		Output:     output,
		Components: components,
		Cached:     cached,
		Duration:   duration,
	}
}

func checkMounts(mounts []indicator.Mount) error {
	var err error
	for i, m := range mounts {
		if m.Indicator == nil {
			err = multierr.Append(err, errors.Errorf("mount #%d: no indicator", i))
			continue
		}

		if !indicator.CanMount(m.Indicator, m.Slot) {
			err = multierr.Append(err, errors.Wrapf(indicator.ErrInvalidSlot, "mount #%d: %s in %s", i, m.Indicator.Name(), m.Slot))
		}
	}
	return err
}
