package state

import (
	"sort"

	"github.com/maruel/natural"
)

// Change describes the transition of one variable during Set.
type Change struct {
	NewValue   any  `json:"newValue" yaml:"newValue"`
	OldValue   any  `json:"oldValue" yaml:"oldValue"`
	HasChanged bool `json:"hasChanged" yaml:"hasChanged"`
}

// Report holds one Change per key the state held before the update.
type Report map[string]Change

// Changed returns the keys whose value changed, in natural order.
func (r Report) Changed() []string {
	keys := make([]string, 0, len(r))
	for k, c := range r {
		if c.HasChanged {
			keys = append(keys, k)
		}
	}
	sortNatural(keys)
	return keys
}

// HasChanges reports whether any key changed.
func (r Report) HasChanges() bool {
	for _, c := range r {
		if c.HasChanged {
			return true
		}
	}
	return false
}

func sortNatural(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(keys[i], keys[j])
	})
}
