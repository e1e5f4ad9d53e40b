// Package waypoint builds the post-layout graph connecting spawn points
// through doors to the ship, and computes carry distances: how far each
// spawn object sits from the ship along the shortest walkable path, and
// whether that path is blocked by a gate. Nodes are waypoint spawn points
// and doors; edges are a unit's own declared adjacency plus zero-length
// links across linked door pairs. Shortest paths use Dijkstra, since edges
// carry real Euclidean-distance weights rather than uniform hop counts.
package waypoint
