package waypoint

import (
	"math"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/layout"
	"github.com/dshills/caveripper/pkg/rng"
)

type nodeKind int

const (
	nodeWaypoint nodeKind = iota
	nodeDoor
	nodeShip
)

type node struct {
	kind nodeKind
	x, y float64
	unit *layout.PlacedUnit
}

type edge struct {
	to     int
	weight float64
	gated  bool
}

// Graph is the frozen post-layout waypoint/door graph for a single layout,
// with shortest carry distances from the ship already computed.
type Graph struct {
	nodes []node
	adj   [][]edge

	ship int
	dist []float64
	gate []bool // gate[i]: does the shortest path from the ship to node i cross a gate
}

func (g *Graph) addNode(n node) int {
	g.nodes = append(g.nodes, n)
	g.adj = append(g.adj, nil)
	return len(g.nodes) - 1
}

func (g *Graph) addEdge(a, b int, weight float64, gated bool) {
	g.adj[a] = append(g.adj[a], edge{to: b, weight: weight, gated: gated})
}

// Build constructs the waypoint graph for lo, assigns every non-ship spawn
// object to its nearest same-unit waypoint, runs Dijkstra from the ship,
// and writes the resulting CarryDist/Gated values directly onto lo's
// SpawnObjects so callers never need to keep the Graph itself around.
func Build(lo *layout.Layout) *Graph {
	g := &Graph{}

	doorNode := make(map[*layout.PlacedDoor]int)
	waypointNode := make(map[*layout.PlacedSpawnPoint]int)
	waypointsByUnit := make(map[*layout.PlacedUnit][]int)

	for _, pu := range lo.Units {
		for _, psp := range pu.SpawnPoints {
			if psp.Kind != caveinfo.SpawnWaypoint {
				continue
			}
			id := g.addNode(node{kind: nodeWaypoint, x: psp.X, y: psp.Y, unit: pu})
			waypointNode[psp] = id
			psp.WaypointID = id
			waypointsByUnit[pu] = append(waypointsByUnit[pu], id)
		}
		for _, pd := range pu.Doors {
			if pd == nil {
				continue
			}
			doorNode[pd] = g.addNode(node{kind: nodeDoor, x: pd.X, y: pd.Y, unit: pu})
		}
	}

	for _, pu := range lo.Units {
		for _, e := range pu.Unit.Adjacency {
			from, ok1 := resolveAdjNode(pu, e.FromKind, e.FromIndex, doorNode, waypointNode)
			to, ok2 := resolveAdjNode(pu, e.ToKind, e.ToIndex, doorNode, waypointNode)
			if !ok1 || !ok2 {
				continue
			}
			g.addEdge(from, to, e.Weight, false)
			g.addEdge(to, from, e.Weight, false)
		}
	}

	linked := make(map[*layout.PlacedDoor]bool)
	for _, pu := range lo.Units {
		for _, pd := range pu.Doors {
			if pd == nil || pd.Linked == nil || linked[pd] {
				continue
			}
			linked[pd], linked[pd.Linked] = true, true
			a, b := doorNode[pd], doorNode[pd.Linked]
			gated := pd.Gate != nil
			g.addEdge(a, b, 0, gated)
			g.addEdge(b, a, 0, gated)
		}
	}

	g.ship = g.attachShip(lo, doorNode, waypointsByUnit)
	g.dijkstra()
	g.annotate(lo)
	return g
}

// resolveAdjNode maps one endpoint of a unit's declared adjacency edge (a
// door index or the unit's i-th waypoint-kind spawn point) to its graph
// node id.
func resolveAdjNode(pu *layout.PlacedUnit, kind caveinfo.AdjNodeKind, idx int, doorNode map[*layout.PlacedDoor]int, waypointNode map[*layout.PlacedSpawnPoint]int) (int, bool) {
	switch kind {
	case caveinfo.AdjDoor:
		if idx < 0 || idx >= len(pu.Doors) || pu.Doors[idx] == nil {
			return 0, false
		}
		id, ok := doorNode[pu.Doors[idx]]
		return id, ok
	case caveinfo.AdjWaypoint:
		n := -1
		for _, psp := range pu.SpawnPoints {
			if psp.Kind != caveinfo.SpawnWaypoint {
				continue
			}
			n++
			if n == idx {
				id, ok := waypointNode[psp]
				return id, ok
			}
		}
	}
	return 0, false
}

// attachShip adds a dedicated node for the ship and wires it to its own
// unit's nearest waypoint (if any) or, failing that, directly to every
// door of its unit — so the ship is never isolated even on a floor whose
// starting unit declares no waypoints.
func (g *Graph) attachShip(lo *layout.Layout, doorNode map[*layout.PlacedDoor]int, waypointsByUnit map[*layout.PlacedUnit][]int) int {
	if lo.Ship == nil {
		return g.addNode(node{kind: nodeShip})
	}
	pu := lo.Ship.Unit
	id := g.addNode(node{kind: nodeShip, x: lo.Ship.X, y: lo.Ship.Y, unit: pu})

	if wps := waypointsByUnit[pu]; len(wps) > 0 {
		nearest, _ := nearestIn(g, lo.Ship.X, lo.Ship.Y, wps)
		d := straight(g, id, nearest)
		g.addEdge(id, nearest, d, false)
		g.addEdge(nearest, id, d, false)
		return id
	}
	for _, pd := range pu.Doors {
		if pd == nil {
			continue
		}
		dn := doorNode[pd]
		d := straight(g, id, dn)
		g.addEdge(id, dn, d, false)
		g.addEdge(dn, id, d, false)
	}
	return id
}

func straight(g *Graph, a, b int) float64 {
	na, nb := g.nodes[a], g.nodes[b]
	return rng.Distance(rng.Vec2{X: na.x, Y: na.y}, rng.Vec2{X: nb.x, Y: nb.y})
}

func nearestIn(g *Graph, x, y float64, candidates []int) (int, float64) {
	best, bestDist := candidates[0], math.Inf(1)
	for _, id := range candidates {
		n := g.nodes[id]
		d := rng.Distance(rng.Vec2{X: x, Y: y}, rng.Vec2{X: n.x, Y: n.y})
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best, bestDist
}

// annotate assigns every non-ship spawn object to its nearest same-unit
// waypoint and writes the resulting carry distance and gated flag onto it.
func (g *Graph) annotate(lo *layout.Layout) {
	waypointsByUnit := make(map[*layout.PlacedUnit][]int)
	for i, n := range g.nodes {
		if n.kind == nodeWaypoint {
			waypointsByUnit[n.unit] = append(waypointsByUnit[n.unit], i)
		}
	}

	for _, psp := range lo.SpawnObjects {
		if psp.Object == nil || psp.Object.Kind == layout.ObjShip {
			continue
		}
		wpID := psp.WaypointID
		if psp.Kind != caveinfo.SpawnWaypoint {
			if wps := waypointsByUnit[psp.Unit]; len(wps) > 0 {
				wpID, _ = nearestIn(g, psp.X, psp.Y, wps)
				psp.WaypointID = wpID
			} else {
				wpID = -1
			}
		}
		if wpID < 0 || wpID >= len(g.dist) {
			psp.Object.CarryDist = math.Inf(1)
			continue
		}
		psp.Object.CarryDist = g.dist[wpID]
		psp.Object.Gated = g.gate[wpID]
	}
}
