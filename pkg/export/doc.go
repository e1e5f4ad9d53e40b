// Package export serializes generated layouts to JSON (the layout output
// schema) and to SVG floor plans for visual debugging.
package export
