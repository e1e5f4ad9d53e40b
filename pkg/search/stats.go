package search

import "context"

// Report is the outcome of a full stats run: what fraction of the
// evaluated seed space satisfies a query.
type Report struct {
	Evaluated uint64
	Hits      uint64
}

// Fraction returns Hits/Evaluated, or 0 if no seeds were evaluated.
func (r Report) Fraction() float64 {
	if r.Evaluated == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Evaluated)
}

// RunStats runs opts to completion (draining every hit without collecting
// layouts) and reports the fraction of evaluated seeds that matched.
// opts.MaxHits is ignored: every candidate seed in the range is evaluated.
func RunStats(ctx context.Context, opts Options) (Report, error) {
	opts.MaxHits = 0
	hits, stats, errc := Run(ctx, opts)

	for range hits {
		// Drain without retaining layouts; stats tracks the counts.
	}
	err := <-errc

	return Report{Evaluated: stats.Evaluated(), Hits: stats.Hits()}, err
}
