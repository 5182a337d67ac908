// Package venue normalizes the many spellings of a ground to one canonical name.
//
// A Mapping is resolved to a fixed point when built, so every raw name maps
// directly to a name that is not itself remapped. Normalize is therefore
// idempotent and safe to apply more than once.
package venue

import (
	"fmt"
	"slices"
	"strings"
)

// Mapping is an immutable, versioned raw -> canonical venue table.
type Mapping struct {
	version   string
	canonical map[string]string
	targets   map[string]struct{}
}

// NewMapping builds a Mapping, resolving chains (a -> b -> c) so that every
// entry points at its final canonical name. Keys and values are trimmed before
// resolving and blank entries are dropped. Cycles are rejected.
func NewMapping(version string, raw map[string]string) (*Mapping, error) {
	if version == "" {
		return nil, ErrEmptyVersion
	}
	clean := make(map[string]string, len(raw))
	for from, to := range raw {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			continue
		}
		clean[from] = to
	}
	m := &Mapping{
		version:   version,
		canonical: make(map[string]string, len(clean)),
		targets:   make(map[string]struct{}),
	}
	for from := range clean {
		to, err := resolve(clean, from)
		if err != nil {
			return nil, err
		}
		m.canonical[from] = to
		m.targets[to] = struct{}{}
	}
	return m, nil
}

func resolve(raw map[string]string, from string) (string, error) {
	seen := map[string]struct{}{from: {}}
	cur := from
	for {
		next, ok := raw[cur]
		if !ok || next == cur {
			return cur, nil
		}
		if _, loop := seen[next]; loop {
			return "", fmt.Errorf("%w: %q", ErrMappingCycle, from)
		}
		seen[next] = struct{}{}
		cur = next
	}
}

// Version identifies the table revision.
func (m *Mapping) Version() string { return m.version }

// Len returns the number of raw entries.
func (m *Mapping) Len() int { return len(m.canonical) }

// Normalize returns the canonical name for raw; unknown names pass through
// trimmed but otherwise unchanged.
func (m *Mapping) Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if m == nil {
		return name
	}
	if c, ok := m.canonical[name]; ok {
		return c
	}
	return name
}

// Known reports whether raw is either a mapped spelling or a canonical name.
func (m *Mapping) Known(raw string) bool {
	name := strings.TrimSpace(raw)
	if _, ok := m.canonical[name]; ok {
		return true
	}
	_, ok := m.targets[name]
	return ok
}

// Unmapped returns the distinct raw names the table does not know, sorted.
// These pass through Normalize unchanged and may undercount a canonical venue.
func (m *Mapping) Unmapped(raws []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range raws {
		name := strings.TrimSpace(r)
		if name == "" || m.Known(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Entries returns a copy of the resolved table.
func (m *Mapping) Entries() map[string]string {
	out := make(map[string]string, len(m.canonical))
	for k, v := range m.canonical {
		out[k] = v
	}
	return out
}
