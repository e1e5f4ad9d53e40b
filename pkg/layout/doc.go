// Package layout holds the generated-layout data model: placed units,
// doors, spawn points, and the grid occupancy tracker the generator uses to
// reject overlapping placements. Types here are built by pkg/generator and
// consumed read-only by pkg/waypoint, pkg/query, and pkg/export.
package layout
