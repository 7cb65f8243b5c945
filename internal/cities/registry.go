// Package cities holds the canonical city list used for travel order
// resolution. The registry is built once from a plain-text file and is
// immutable afterwards, so it is safe to share across concurrent callers.
package cities

import (
	"fmt"
	"os"
	"strings"

	"cheminot.railnav.org/internal/textnorm"
)

// Registry maps normalized city names back to their canonical display form.
type Registry struct {
	names      []string
	normalized []string
	byNorm     map[string]string
}

// Load reads one canonical city name per line. Blank lines and lines
// starting with '#' are skipped.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading city list: %w", err)
	}
	return FromNames(strings.Split(string(data), "\n")), nil
}

// FromNames builds a registry from an in-memory list of canonical names.
func FromNames(names []string) *Registry {
	r := &Registry{byNorm: make(map[string]string, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		norm := textnorm.Normalize(name)
		if norm == "" {
			continue
		}
		if _, exists := r.byNorm[norm]; exists {
			continue
		}
		r.names = append(r.names, name)
		r.normalized = append(r.normalized, norm)
		r.byNorm[norm] = name
	}
	return r
}

// Len returns the number of known cities.
func (r *Registry) Len() int {
	return len(r.names)
}

// Canonical returns the canonical display name for a normalized city name.
func (r *Registry) Canonical(norm string) (string, bool) {
	name, ok := r.byNorm[norm]
	return name, ok
}

// NormalizedNames returns all normalized city names in load order. The
// returned slice is shared and must not be mutated.
func (r *Registry) NormalizedNames() []string {
	return r.normalized
}

// Names returns all canonical city names in load order. The returned slice
// is shared and must not be mutated.
func (r *Registry) Names() []string {
	return r.names
}
