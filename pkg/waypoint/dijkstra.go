package waypoint

import (
	"container/heap"
	"math"
)

type pqItem struct {
	node int
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra computes shortest distances from the ship node to every other
// node, plus whether the shortest path to each node crosses a gate. Gate
// status is carried along the shortest-path tree: a node is "gated" iff
// the edge that first achieves its final distance is itself gated, or its
// predecessor already is.
func (g *Graph) dijkstra() {
	n := len(g.nodes)
	dist := make([]float64, n)
	gated := make([]bool, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[g.ship] = 0

	pq := &priorityQueue{{node: g.ship, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqItem)
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range g.adj[u] {
			nd := dist[u] + e.weight
			if nd < dist[e.to] {
				dist[e.to] = nd
				gated[e.to] = gated[u] || e.gated
				heap.Push(pq, pqItem{node: e.to, dist: nd})
			}
		}
	}

	g.dist = dist
	g.gate = gated
}
