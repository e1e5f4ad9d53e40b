package query

import (
	"fmt"
	"strconv"
)

// ParseError carries a source offset and the token kinds that would have
// been accepted there.
type ParseError struct {
	Offset   int
	Found    string
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("query: at offset %d: unexpected %q, expected one of %v", e.Offset, e.Found, e.Expected)
}

type parser struct {
	l    *lexer
	tok  token
	peek token
}

func newParser(src string) *parser {
	l := newLexer(src)
	p := &parser{l: l}
	p.tok = l.next()
	p.peek = l.next()
	return p
}

func (p *parser) advance() {
	p.tok = p.peek
	p.peek = p.l.next()
}

// Parse parses a full query string into a Query.
func Parse(src string) (*Query, error) {
	p := newParser(src)
	q, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"EOF"}}
	}
	return q, nil
}

func (p *parser) parseQuery() (*Query, error) {
	q := &Query{}
	sub, err := p.parseIdent("sublevel identifier")
	if err != nil {
		return nil, err
	}
	lastSub := sub

	for {
		clause, err := p.parseClause(lastSub)
		if err != nil {
			return nil, err
		}
		q.Clauses = append(q.Clauses, *clause)

		if p.tok.kind != tokAmp {
			break
		}
		p.advance()
		if p.tok.kind == tokIdent && looksLikeSublevel(p.tok.text) && p.peek.kind != tokSlash {
			lastSub = p.tok.text
			p.advance()
		}
	}
	return q, nil
}

// looksLikeSublevel is a light heuristic distinguishing a leading sublevel
// code from an entity name at the top of a new clause: sublevel codes end
// in digits.
func looksLikeSublevel(s string) bool {
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last >= '0' && last <= '9'
}

func (p *parser) parseIdent(what string) (string, error) {
	if p.tok.kind != tokIdent {
		return "", &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{what}}
	}
	s := p.tok.text
	p.advance()
	return s, nil
}

func (p *parser) parseEntity() (Entity, error) {
	name, err := p.parseIdent("entity name")
	if err != nil {
		return Entity{}, err
	}
	e := Entity{Name: name}
	if p.tok.kind == tokSlash {
		p.advance()
		variant, err := p.parseIdent("entity variant")
		if err != nil {
			return Entity{}, err
		}
		e.Variant = variant
	}
	return e, nil
}

func (p *parser) parseComparator() (Comparator, error) {
	switch p.tok.kind {
	case tokLT:
		p.advance()
		return CompLT, nil
	case tokEQ:
		p.advance()
		return CompEQ, nil
	case tokGT:
		p.advance()
		return CompGT, nil
	}
	return 0, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"<", "=", ">"}}
}

func (p *parser) parseNumber() (float64, error) {
	if p.tok.kind != tokNumber {
		return 0, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"number"}}
	}
	v, err := strconv.ParseFloat(p.tok.text, 64)
	if err != nil {
		return 0, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"number"}}
	}
	p.advance()
	return v, nil
}

// parseClause dispatches on lookahead after the leading identifier to
// decide which of the six clause shapes is present: room_path signals
// itself via a following "+" or "->"; the rest are an entity (optionally
// "/variant") followed by a comparator or a gated/carry/straight keyword.
func (p *parser) parseClause(sublevel string) (*Clause, error) {
	if p.tok.kind != tokIdent {
		return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"entity or room name"}}
	}

	if p.peek.kind == tokPlus || p.peek.kind == tokArrow {
		path, err := p.parseRoomPath()
		if err != nil {
			return nil, err
		}
		return &Clause{Sublevel: sublevel, Kind: ClauseRoomPath, Path: path}, nil
	}

	entity, err := p.parseEntity()
	if err != nil {
		return nil, err
	}

	switch {
	case p.tok.kind == tokLT || p.tok.kind == tokEQ || p.tok.kind == tokGT:
		cmp, err := p.parseComparator()
		if err != nil {
			return nil, err
		}
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &Clause{Sublevel: sublevel, Kind: ClauseCompare, Entity: entity, Comparator: cmp, Number: num}, nil

	case isKeyword(p.tok, "carry"):
		p.advance()
		if !isKeyword(p.tok, "dist") && !isKeyword(p.tok, "distance") && !isKeyword(p.tok, "path") {
			return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"dist", "distance", "path"}}
		}
		p.advance()
		cmp, err := p.parseComparator()
		if err != nil {
			return nil, err
		}
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &Clause{Sublevel: sublevel, Kind: ClauseCarryDist, Entity: entity, Comparator: cmp, Number: num}, nil

	case isKeyword(p.tok, "straight"):
		p.advance()
		if !isKeyword(p.tok, "dist") {
			return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"dist"}}
		}
		p.advance()
		entity2, err := p.parseEntity()
		if err != nil {
			return nil, err
		}
		cmp, err := p.parseComparator()
		if err != nil {
			return nil, err
		}
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &Clause{Sublevel: sublevel, Kind: ClauseStraightDist, Entity: entity, Entity2: entity2, Comparator: cmp, Number: num}, nil

	case isKeyword(p.tok, "gated"):
		p.advance()
		return &Clause{Sublevel: sublevel, Kind: ClauseGated, Entity: entity}, nil

	case isKeyword(p.tok, "not"):
		p.advance()
		if !isKeyword(p.tok, "gated") {
			return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"gated"}}
		}
		p.advance()
		return &Clause{Sublevel: sublevel, Kind: ClauseNotGated, Entity: entity}, nil

	case p.tok.kind == tokBang:
		p.advance()
		if !isKeyword(p.tok, "gated") {
			return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"gated"}}
		}
		p.advance()
		return &Clause{Sublevel: sublevel, Kind: ClauseNotGated, Entity: entity}, nil
	}

	return nil, &ParseError{Offset: p.tok.offset, Found: p.tok.text, Expected: []string{"<", "=", ">", "carry", "straight", "gated", "not", "!"}}
}

func (p *parser) parseRoomPath() ([]PathComponent, error) {
	var path []PathComponent
	for {
		comp, err := p.parsePathComponent()
		if err != nil {
			return nil, err
		}
		path = append(path, comp)
		if p.tok.kind != tokArrow {
			break
		}
		p.advance()
	}
	return path, nil
}

func (p *parser) parsePathComponent() (PathComponent, error) {
	room, err := p.parseIdent("room pattern")
	if err != nil {
		return PathComponent{}, err
	}
	comp := PathComponent{Room: room}
	for p.tok.kind == tokPlus {
		p.advance()
		e, err := p.parseEntity()
		if err != nil {
			return PathComponent{}, err
		}
		comp.Contains = append(comp.Contains, e)
	}
	return comp, nil
}
