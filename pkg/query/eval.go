package query

import (
	"fmt"
	"strings"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/rng"
)

// ReferenceError reports that a clause named an entity with no instance on
// the floor. Non-fatal for compare (the clause counts zero); fatal for
// carry_dist, straight_dist and the gated/not-gated clauses, since there is
// nothing to measure a distance or gated status against. room_path does not
// report one: an unmatched component simply makes the clause false.
type ReferenceError struct {
	Sublevel string
	Entity   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("query: %s: no entity matching %q", e.Sublevel, e.Entity)
}

// Eval evaluates q against a set of already-generated layouts, keyed by
// sublevel identifier. A query matches iff every clause evaluates true
// against its (inherited or explicit) sublevel's layout.
func (q Query) Eval(layouts map[string]*layout.Layout) (bool, error) {
	for _, c := range q.Clauses {
		lo, ok := layouts[c.Sublevel]
		if !ok {
			return false, fmt.Errorf("query: no layout supplied for sublevel %q", c.Sublevel)
		}
		ok, err := evalClause(c, lo)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evalClause(c Clause, lo *layout.Layout) (bool, error) {
	switch c.Kind {
	case ClauseCompare:
		n := countEntity(lo, c.Entity)
		return compareInt(n, c.Comparator, c.Number), nil

	case ClauseCarryDist:
		matches, err := matchObjects(lo, c.Entity)
		if err != nil {
			return false, &ReferenceError{Sublevel: c.Sublevel, Entity: c.Entity.String()}
		}
		for _, psp := range matches {
			if compareFloat(psp.Object.CarryDist, c.Comparator, c.Number) {
				return true, nil
			}
		}
		return false, nil

	case ClauseStraightDist:
		as, err := matchObjects(lo, c.Entity)
		if err != nil {
			return false, &ReferenceError{Sublevel: c.Sublevel, Entity: c.Entity.String()}
		}
		bs, err := matchObjects(lo, c.Entity2)
		if err != nil {
			return false, &ReferenceError{Sublevel: c.Sublevel, Entity: c.Entity2.String()}
		}
		for _, a := range as {
			for _, b := range bs {
				if a == b {
					continue
				}
				d := straightDist(a, b)
				if compareFloat(d, c.Comparator, c.Number) {
					return true, nil
				}
			}
		}
		return false, nil

	case ClauseGated:
		matches, err := matchObjects(lo, c.Entity)
		if err != nil {
			return false, &ReferenceError{Sublevel: c.Sublevel, Entity: c.Entity.String()}
		}
		for _, psp := range matches {
			if psp.Object.Gated {
				return true, nil
			}
		}
		return false, nil

	case ClauseNotGated:
		matches, err := matchObjects(lo, c.Entity)
		if err != nil {
			return false, &ReferenceError{Sublevel: c.Sublevel, Entity: c.Entity.String()}
		}
		for _, psp := range matches {
			if !psp.Object.Gated {
				return true, nil
			}
		}
		return false, nil

	case ClauseRoomPath:
		return matchRoomPath(lo, c.Path), nil
	}
	return false, fmt.Errorf("query: unknown clause kind %d", c.Kind)
}

func compareInt(n int, cmp Comparator, want float64) bool {
	return compareFloat(float64(n), cmp, want)
}

func compareFloat(got float64, cmp Comparator, want float64) bool {
	switch cmp {
	case CompLT:
		return got < want
	case CompGT:
		return got > want
	default:
		return got == want
	}
}

// straightDist mirrors waypoint.StraightDist: it goes through rng.Distance
// rather than math.Sqrt so a straight_dist clause keys off the same
// game-accurate rounding as the waypoint graph it's evaluated against.
func straightDist(a, b *layout.PlacedSpawnPoint) float64 {
	return rng.Distance(rng.Vec2{X: a.X, Y: a.Y}, rng.Vec2{X: b.X, Y: b.Y})
}

// shapeKeyword maps the three shape-class keywords compare/room_path
// recognize onto caveinfo.UnitShape.
func shapeKeyword(name string) (caveinfo.UnitShape, bool) {
	switch strings.ToLower(name) {
	case "room":
		return caveinfo.ShapeRoom, true
	case "hallway":
		return caveinfo.ShapeHallway, true
	case "alcove":
		return caveinfo.ShapeCap, true
	}
	return 0, false
}

// spawnCategoryKeyword maps the four spawn-category keywords onto
// layout.SpawnObjectKind.
func spawnCategoryKeyword(name string) (layout.SpawnObjectKind, bool) {
	switch strings.ToLower(name) {
	case "hole":
		return layout.ObjHole, true
	case "geyser":
		return layout.ObjGeyser, true
	case "ship":
		return layout.ObjShip, true
	case "gate":
		return layout.ObjGate, true
	}
	return 0, false
}

// countEntity implements the compare clause's counting rule: shape class,
// then spawn category, then internal name (unit or spawn object), in that
// order, narrowed by a primary/secondary variant if given.
func countEntity(lo *layout.Layout, e Entity) int {
	if shape, ok := shapeKeyword(e.Name); ok {
		return len(applyVariantUnits(unitsByShape(lo, shape), e.Variant))
	}
	if kind, ok := spawnCategoryKeyword(e.Name); ok {
		return len(applyVariantPoints(pointsByKind(lo, kind), e.Variant))
	}
	if units := unitsByName(lo, e.Name); len(units) > 0 {
		return len(applyVariantUnits(units, e.Variant))
	}
	return len(applyVariantPoints(pointsByName(lo, e.Name), e.Variant))
}

// matchObjects resolves an entity to the spawn points (carrying a
// SpawnObject) it refers to, for the distance/gated clause family. Returns
// an error if nothing on the floor matches.
func matchObjects(lo *layout.Layout, e Entity) ([]*layout.PlacedSpawnPoint, error) {
	var matches []*layout.PlacedSpawnPoint
	if kind, ok := spawnCategoryKeyword(e.Name); ok {
		matches = pointsByKind(lo, kind)
	} else {
		matches = pointsByName(lo, e.Name)
	}
	matches = applyVariantPoints(matches, e.Variant)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no match")
	}
	return matches, nil
}

func unitsByShape(lo *layout.Layout, shape caveinfo.UnitShape) []*layout.PlacedUnit {
	var out []*layout.PlacedUnit
	for _, pu := range lo.Units {
		if pu.Unit.Shape == shape {
			out = append(out, pu)
		}
	}
	return out
}

func unitsByName(lo *layout.Layout, name string) []*layout.PlacedUnit {
	var out []*layout.PlacedUnit
	for _, pu := range lo.Units {
		if strings.EqualFold(pu.Unit.InternalName, name) {
			out = append(out, pu)
		}
	}
	return out
}

func pointsByKind(lo *layout.Layout, kind layout.SpawnObjectKind) []*layout.PlacedSpawnPoint {
	var out []*layout.PlacedSpawnPoint
	if kind == layout.ObjShip && lo.Ship != nil {
		out = append(out, lo.Ship)
	}
	if kind == layout.ObjHole && lo.Hole != nil {
		out = append(out, lo.Hole)
	}
	if kind == layout.ObjGeyser && lo.Geyser != nil {
		out = append(out, lo.Geyser)
	}
	for _, psp := range lo.SpawnObjects {
		if psp == lo.Ship || psp == lo.Hole || psp == lo.Geyser {
			continue // already added above
		}
		if psp.Object != nil && psp.Object.Kind == kind {
			out = append(out, psp)
		}
	}
	return out
}

func pointsByName(lo *layout.Layout, name string) []*layout.PlacedSpawnPoint {
	var out []*layout.PlacedSpawnPoint
	for _, psp := range lo.SpawnObjects {
		if psp.Object != nil && strings.EqualFold(psp.Object.InternalName, name) {
			out = append(out, psp)
		}
	}
	return out
}

// applyVariant* narrow a match list to its first ("primary") or second
// ("secondary") element when a variant was given; an unmatched variant
// index yields no matches. No variant returns the list unchanged.
func applyVariantUnits(units []*layout.PlacedUnit, variant string) []*layout.PlacedUnit {
	idx, ok := variantIndex(variant)
	if !ok {
		return units
	}
	if idx >= len(units) {
		return nil
	}
	return units[idx : idx+1]
}

func applyVariantPoints(points []*layout.PlacedSpawnPoint, variant string) []*layout.PlacedSpawnPoint {
	idx, ok := variantIndex(variant)
	if !ok {
		return points
	}
	if idx >= len(points) {
		return nil
	}
	return points[idx : idx+1]
}

func variantIndex(variant string) (int, bool) {
	switch strings.ToLower(variant) {
	case "primary":
		return 0, true
	case "secondary":
		return 1, true
	}
	return 0, false
}

// matchRoomPath reports whether the layout's unit adjacency graph contains
// a walk matching path, trying every unit as a starting point.
func matchRoomPath(lo *layout.Layout, path []PathComponent) bool {
	if len(path) == 0 {
		return true
	}
	for _, pu := range lo.Units {
		if walkFrom(pu, path, make(map[*layout.PlacedUnit]bool)) {
			return true
		}
	}
	return false
}

func walkFrom(pu *layout.PlacedUnit, path []PathComponent, visited map[*layout.PlacedUnit]bool) bool {
	comp := path[0]
	if !roomMatches(pu, comp) {
		return false
	}
	if len(path) == 1 {
		return true
	}
	visited[pu] = true
	defer delete(visited, pu)
	for _, next := range linkedUnits(pu) {
		if visited[next] {
			continue
		}
		if walkFrom(next, path[1:], visited) {
			return true
		}
	}
	return false
}

func linkedUnits(pu *layout.PlacedUnit) []*layout.PlacedUnit {
	var out []*layout.PlacedUnit
	for _, pd := range pu.Doors {
		if pd == nil || pd.Linked == nil {
			continue
		}
		out = append(out, pd.Linked.Unit)
	}
	return out
}

func roomMatches(pu *layout.PlacedUnit, comp PathComponent) bool {
	if !strings.EqualFold(comp.Room, "any") {
		if shape, ok := shapeKeyword(comp.Room); ok {
			if pu.Unit.Shape != shape {
				return false
			}
		} else if !strings.EqualFold(pu.Unit.InternalName, comp.Room) {
			return false
		}
	}
	for _, e := range comp.Contains {
		if !unitContains(pu, e) {
			return false
		}
	}
	return true
}

func unitContains(pu *layout.PlacedUnit, e Entity) bool {
	if strings.EqualFold(e.Name, "any") {
		return len(pu.SpawnPoints) > 0
	}
	kind, isCategory := spawnCategoryKeyword(e.Name)
	for _, psp := range pu.SpawnPoints {
		if psp.Object == nil {
			continue
		}
		if isCategory && psp.Object.Kind == kind {
			return true
		}
		if !isCategory && strings.EqualFold(psp.Object.InternalName, e.Name) {
			return true
		}
	}
	return false
}
