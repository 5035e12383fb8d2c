package datatable

import (
	"maps"
	"slices"
)

// selection is the set of selected row keys. It is independent of the visible
// page and only shrinks when keys leave the dataset or are deselected.
type selection struct {
	keys map[string]struct{}
}

func newSelection() selection {
	return selection{keys: make(map[string]struct{})}
}

func (s *selection) has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *selection) len() int { return len(s.keys) }

// add reports whether the set changed.
func (s *selection) add(key string) bool {
	if s.has(key) {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// remove reports whether the set changed.
func (s *selection) remove(key string) bool {
	if !s.has(key) {
		return false
	}
	delete(s.keys, key)
	return true
}

func (s *selection) clear() bool {
	if len(s.keys) == 0 {
		return false
	}
	clear(s.keys)
	return true
}

// prune drops every key for which present returns false.
func (s *selection) prune(present func(key string) bool) bool {
	changed := false
	for key := range s.keys {
		if !present(key) {
			delete(s.keys, key)
			changed = true
		}
	}
	return changed
}

// sorted returns the keys in ascending order. Never nil.
func (s *selection) sorted() []string {
	keys := slices.Sorted(maps.Keys(s.keys))
	if keys == nil {
		keys = []string{}
	}
	return keys
}
