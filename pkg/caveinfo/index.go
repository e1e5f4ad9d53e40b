package caveinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sublevel identifies a specific floor of a specific cave of a specific game
// variant: (game_tag, cave_name, floor_number).
type Sublevel struct {
	Game  string
	Cave  string
	Floor int
}

func (s Sublevel) String() string {
	return fmt.Sprintf("%s/%s/%d", s.Game, s.Cave, s.Floor)
}

// IndexEntry is one record of caveinfo_config.txt: a cave's game tag, human
// name, challenge-mode flag, caveinfo filename, and its shortcode aliases.
type IndexEntry struct {
	GameTag     string
	HumanName   string
	IsChallenge bool
	Filename    string
	Aliases     []string
}

// Index is the parsed caveinfo_config.txt: the cave-shortcode alias table
// every sublevel code is resolved against.
type Index struct {
	Entries     []IndexEntry
	byAlias     map[string]*IndexEntry
}

// LoadIndex reads and parses dir/caveinfo_config.txt.
func LoadIndex(dir string) (*Index, error) {
	path := filepath.Join(dir, "caveinfo_config.txt")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer f.Close()
	return parseIndex(path, f)
}

// LoadIndexFromBytes parses index content already in memory, for tests and
// programmatic construction.
func LoadIndexFromBytes(data []byte) (*Index, error) {
	return parseIndex("<bytes>", strings.NewReader(string(data)))
}

func parseIndex(name string, r io.Reader) (*Index, error) {
	idx := &Index{byAlias: make(map[string]*IndexEntry)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 5 {
			return nil, &ParseError{File: name, Line: lineNum, Excerpt: line}
		}

		entry := IndexEntry{
			GameTag:     fields[0],
			HumanName:   fields[1],
			IsChallenge: fields[2] == "1" || strings.EqualFold(fields[2], "true"),
			Filename:    fields[3],
			Aliases:     fields[4:],
		}
		idx.Entries = append(idx.Entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	for i := range idx.Entries {
		e := &idx.Entries[i]
		for _, alias := range e.Aliases {
			idx.byAlias[strings.ToLower(alias)] = e
		}
	}
	return idx, nil
}

// Lookup resolves an alphabetic cave alias, case-insensitively.
func (idx *Index) Lookup(alias string) (*IndexEntry, bool) {
	e, ok := idx.byAlias[strings.ToLower(alias)]
	return e, ok
}

// ParseSublevel splits a shortcode like "scx7" into its alphabetic cave
// alias ("scx") and numeric floor suffix (7), resolves the alias against
// idx, and returns the resolved Sublevel.
func ParseSublevel(code string, idx *Index) (Sublevel, error) {
	i := len(code)
	for i > 0 && code[i-1] >= '0' && code[i-1] <= '9' {
		i--
	}
	alias, floorStr := code[:i], code[i:]
	if alias == "" || floorStr == "" {
		return Sublevel{}, &UnknownSublevelError{Code: code}
	}

	entry, ok := idx.Lookup(alias)
	if !ok {
		return Sublevel{}, &UnknownSublevelError{Code: code}
	}

	floor, err := strconv.Atoi(floorStr)
	if err != nil {
		return Sublevel{}, &UnknownSublevelError{Code: code}
	}

	return Sublevel{Game: entry.GameTag, Cave: entry.Filename, Floor: floor}, nil
}
