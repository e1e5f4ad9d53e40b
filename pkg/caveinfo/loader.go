package caveinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// variantTolerance maps a game tag to the parse mode its caveinfo corpus
// requires. newyear and 216 carry known-malformed files (stray braces,
// trailing junk) that the strict grammar would reject;
// everything else parses strictly so genuine corruption is still caught.
var variantTolerance = map[string]parseMode{
	"newyear": tolerantMode,
	"216":     tolerantMode,
}

func modeFor(gameTag string) parseMode {
	if m, ok := variantTolerance[gameTag]; ok {
		return m
	}
	return strictMode
}

// Loader reads and caches FloorSpecs from a caveinfo directory. Floor specs
// are cached per Sublevel (game, cave and floor, one file per floor) and are
// immutable once built, since every generator call and search worker shares
// the same spec. Each spec is built once under the write lock; later lookups
// take the shared read lock, so reads are not lock-free.
type Loader struct {
	dir   string
	index *Index

	mu    sync.RWMutex
	cache map[Sublevel]*FloorSpec
	units map[string]*MapUnit
}

// NewLoader creates a Loader rooted at dir, reading dir/caveinfo_config.txt
// immediately (it is small and needed for every subsequent Load call).
func NewLoader(dir string) (*Loader, error) {
	idx, err := LoadIndex(dir)
	if err != nil {
		return nil, err
	}
	return &Loader{
		dir:   dir,
		index: idx,
		cache: make(map[Sublevel]*FloorSpec),
	}, nil
}

// Index returns the loader's parsed alias index.
func (l *Loader) Index() *Index {
	return l.index
}

// Resolve parses a shortcode like "scx7" into a Sublevel using the loader's
// index.
func (l *Loader) Resolve(code string) (Sublevel, error) {
	return ParseSublevel(code, l.index)
}

// Load returns the FloorSpec for sub, populating the cache on first access.
func (l *Loader) Load(sub Sublevel) (*FloorSpec, error) {
	l.mu.RLock()
	if fs, ok := l.cache[sub]; ok {
		l.mu.RUnlock()
		return fs, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if fs, ok := l.cache[sub]; ok {
		return fs, nil
	}

	fs, err := l.load(sub)
	if err != nil {
		return nil, err
	}
	l.cache[sub] = fs
	return fs, nil
}

func (l *Loader) load(sub Sublevel) (*FloorSpec, error) {
	path := filepath.Join(l.dir, fmt.Sprintf("%s%d.txt", sub.Cave, sub.Floor))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading caveinfo file: %w", err)
	}

	sections, err := parseFile(path, string(data), modeFor(sub.Game))
	if err != nil {
		return nil, err
	}

	units, err := l.unitRegistry()
	if err != nil {
		return nil, err
	}

	fs, err := interpretSections(sub, sections, units)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*MapUnit, len(fs.UnitPool)+1)
	for _, ref := range fs.UnitPool {
		u, ok := units[ref.InternalName]
		if !ok {
			return nil, fmt.Errorf("caveinfo %s: unresolved map unit %q", path, ref.InternalName)
		}
		resolved[ref.InternalName] = u
	}
	// The starting unit is placed directly (pkg/generator's phaseUnitSelection)
	// and need not also appear as a weighted pool entry.
	if fs.StartUnit != "" {
		if u, ok := units[fs.StartUnit]; ok {
			resolved[fs.StartUnit] = u
		} else {
			return nil, fmt.Errorf("caveinfo %s: unresolved start unit %q", path, fs.StartUnit)
		}
	}
	fs.Units = resolved

	return fs, nil
}

// unitRegistry lazily loads and parses every per-unit text file under
// dir/units, keyed by internal name. Requires l.mu to already be held (Load
// calls this only from inside its write-locked section).
func (l *Loader) unitRegistry() (map[string]*MapUnit, error) {
	if l.units != nil {
		return l.units, nil
	}

	unitsDir := filepath.Join(l.dir, "units")
	entries, err := os.ReadDir(unitsDir)
	if err != nil {
		return nil, fmt.Errorf("reading units directory: %w", err)
	}

	units := make(map[string]*MapUnit, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		path := filepath.Join(unitsDir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading unit file %s: %w", path, err)
		}
		u, err := ParseMapUnit(path, string(data))
		if err != nil {
			return nil, err
		}
		units[u.InternalName] = u
	}

	l.units = units
	return units, nil
}
