// Package caveinfo loads the game's textual floor-description files into a
// normalized, immutable FloorSpec. It parses the brace-delimited format used
// by per-cave files, the comma-separated index (caveinfo_config.txt), and the
// narrower grammar used by per-map-unit files. The loader is pure: the same
// files on disk always yield the same FloorSpec.
package caveinfo
