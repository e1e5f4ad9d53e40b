package query

import "fmt"

// Comparator is one of the three comparison operators a numeric clause may
// use.
type Comparator int

const (
	CompLT Comparator = iota
	CompEQ
	CompGT
)

func (c Comparator) String() string {
	switch c {
	case CompLT:
		return "<"
	case CompGT:
		return ">"
	default:
		return "="
	}
}

// Entity names what a clause matches: an internal name or shape/category
// keyword, optionally disambiguated with a primary/secondary variant.
type Entity struct {
	Name    string
	Variant string // "", "primary", or "secondary"
}

func (e Entity) String() string {
	if e.Variant == "" {
		return e.Name
	}
	return e.Name + "/" + e.Variant
}

// ClauseKind distinguishes the six clause shapes the grammar allows.
type ClauseKind int

const (
	ClauseCompare ClauseKind = iota
	ClauseCarryDist
	ClauseStraightDist
	ClauseGated
	ClauseNotGated
	ClauseRoomPath
)

// PathComponent is one step of a room_path clause: a room pattern (a shape
// class, "any", or an internal name) plus the entities it must contain.
type PathComponent struct {
	Room     string
	Contains []Entity
}

// Clause is one predicate, scoped to a single sublevel.
type Clause struct {
	Sublevel string
	Kind     ClauseKind

	Entity  Entity
	Entity2 Entity // straight_dist's second operand

	Comparator Comparator
	Number     float64

	Path []PathComponent
}

// Query is a parsed predicate: a conjunction of clauses, each scoped to
// whichever sublevel it names or inherits.
type Query struct {
	Clauses []Clause
}

// String renders the query back to source form; used by tests to check
// the parse/print/reparse round trip.
func (q Query) String() string {
	var out string
	lastSub := ""
	for i, c := range q.Clauses {
		if i > 0 {
			out += " & "
		}
		if c.Sublevel != lastSub {
			out += c.Sublevel + " "
			lastSub = c.Sublevel
		}
		out += c.string()
	}
	return out
}

func (c Clause) string() string {
	switch c.Kind {
	case ClauseCompare:
		return fmt.Sprintf("%s %s %v", c.Entity, c.Comparator, c.Number)
	case ClauseCarryDist:
		return fmt.Sprintf("%s carry dist %s %v", c.Entity, c.Comparator, c.Number)
	case ClauseStraightDist:
		return fmt.Sprintf("%s straight dist %s %s %v", c.Entity, c.Entity2, c.Comparator, c.Number)
	case ClauseGated:
		return fmt.Sprintf("%s gated", c.Entity)
	case ClauseNotGated:
		return fmt.Sprintf("%s not gated", c.Entity)
	case ClauseRoomPath:
		out := ""
		for i, p := range c.Path {
			if i > 0 {
				out += " -> "
			}
			out += p.Room
			for _, e := range p.Contains {
				out += " + " + e.String()
			}
		}
		return out
	}
	return ""
}
