// Package search implements the parallel seed search driver: a worker
// pool that regenerates layouts for one or more
// sublevels per candidate seed, evaluates a compiled query against them,
// and streams matches out over a bounded channel.
package search

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/generator"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/query"
	"github.com/dshills/caveripper/pkg/waypoint"
	"golang.org/x/sync/errgroup"
)

// Hit is one seed whose generated layouts satisfied a query.
type Hit struct {
	Seed    uint32
	Layouts map[string]*layout.Layout
}

// Options configures one search run. Either Seeds or [SeedStart, SeedEnd)
// selects the candidates; Seeds takes precedence when non-nil.
type Options struct {
	Loader    *caveinfo.Loader
	Sublevels map[string]caveinfo.Sublevel // sublevel_ident -> resolved Sublevel
	Query     *query.Query

	Seeds     []uint32
	SeedStart uint32
	SeedEnd   uint64 // exclusive; uint64 so SeedEnd=2^32 can select the full space

	Workers int           // 0 => runtime.GOMAXPROCS(0)
	Timeout time.Duration // 0 => no timeout
	MaxHits int           // 0 => unlimited
}

// Stats reports live progress of a search, safe to read from any goroutine
// while the search is in flight.
type Stats struct {
	evaluated uint64
	hits      uint64
}

func (s *Stats) Evaluated() uint64 { return atomic.LoadUint64(&s.evaluated) }
func (s *Stats) Hits() uint64      { return atomic.LoadUint64(&s.hits) }

// Run launches a parallel seed search. It returns immediately; hits stream
// over the returned channel, which is closed once the search completes
// (seed space exhausted, MaxHits reached, the timeout elapses, or ctx is
// cancelled). The returned error channel carries at most one fatal error
// (a floor spec failing to load) and is always closed after the hit
// channel.
func Run(ctx context.Context, opts Options) (<-chan Hit, *Stats, <-chan error) {
	hits := make(chan Hit, 64)
	errc := make(chan error, 1)
	stats := &Stats{}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	var stopped atomic.Bool
	var cursor uint64 // next seed index to claim

	nextSeed := func() (uint32, bool) {
		idx := atomic.AddUint64(&cursor, 1) - 1
		if opts.Seeds != nil {
			if idx >= uint64(len(opts.Seeds)) {
				return 0, false
			}
			return opts.Seeds[idx], true
		}
		s := uint64(opts.SeedStart) + idx
		if s >= opts.SeedEnd {
			return 0, false
		}
		return uint32(s), true
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				if stopped.Load() || gctx.Err() != nil {
					return nil
				}
				seed, ok := nextSeed()
				if !ok {
					return nil
				}

				matched, layouts, err := evalSeed(gctx, opts, seed)
				if err != nil {
					return err
				}
				atomic.AddUint64(&stats.evaluated, 1)
				if !matched {
					continue
				}
				atomic.AddUint64(&stats.hits, 1)

				select {
				case hits <- Hit{Seed: seed, Layouts: layouts}:
				case <-gctx.Done():
					return nil
				}

				if opts.MaxHits > 0 && int(atomic.LoadUint64(&stats.hits)) >= opts.MaxHits {
					stopped.Store(true)
					return nil
				}
			}
		})
	}

	go func() {
		err := g.Wait()
		close(hits)
		if err != nil {
			errc <- err
		}
		close(errc)
	}()

	return hits, stats, errc
}

// evalSeed generates every sublevel the query references for seed,
// evaluates the query, and reports whether it matched. A per-seed panic
// (from a generator defect on some pathological seed) is recovered and
// logged, never aborting the search.
func evalSeed(ctx context.Context, opts Options, seed uint32) (matched bool, layouts map[string]*layout.Layout, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("search: seed %#x: recovered panic: %v", seed, r)
			matched, layouts, err = false, nil, nil
		}
	}()

	layouts = make(map[string]*layout.Layout, len(opts.Sublevels))
	for ident, sub := range opts.Sublevels {
		fs, loadErr := opts.Loader.Load(sub)
		if loadErr != nil {
			return false, nil, fmt.Errorf("search: loading %s: %w", sub, loadErr)
		}
		lo := generator.Generate(ctx, fs, seed)
		waypoint.Build(lo)
		layouts[ident] = lo
	}

	ok, evalErr := opts.Query.Eval(layouts)
	if evalErr != nil {
		return false, layouts, nil
	}
	return ok, layouts, nil
}
