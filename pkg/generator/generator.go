package generator

import (
	"context"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
)

var phases = []func(*buildState){
	phaseInit,
	phaseTargetCounts,
	phaseUnitSelection,
	phasePlacement,
	phaseCapSealing,
	phaseGatePlacement,
	phaseSpawnPopulation,
	phaseFinalization,
}

// Generate builds the layout for fs under seed. It runs every phase in
// order, checking ctx between phases (generation itself is not cancelable
// mid-phase, only between whole stages, since a partially built layout has
// no well-defined external meaning). Generate never panics and never
// returns an error: a pathological seed still yields a layout, even a
// visibly malformed one.
func Generate(ctx context.Context, fs *caveinfo.FloorSpec, seed uint32) *layout.Layout {
	st := newBuildState(fs, seed)

	for _, phase := range phases {
		select {
		case <-ctx.Done():
			return st.freeze()
		default:
		}
		phase(st)
	}
	return st.freeze()
}
