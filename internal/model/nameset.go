package model

import "sort"

// NameSet is an unordered, deduplicated set of identifier strings.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from the provided names.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set.Add(name)
	}

	return set
}

// Add inserts name into the set.
func (s NameSet) Add(name string) {
	s[name] = struct{}{}
}

// Has reports whether name is a member of the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of members.
func (s NameSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s NameSet) Clone() NameSet {
	clone := make(NameSet, len(s))
	for name := range s {
		clone.Add(name)
	}

	return clone
}

// Intersect returns the members present in both sets.
func (s NameSet) Intersect(other NameSet) NameSet {
	result := NewNameSet()

	for name := range s {
		if other.Has(name) {
			result.Add(name)
		}
	}

	return result
}

// Difference returns the members of s that are absent from other.
func (s NameSet) Difference(other NameSet) NameSet {
	result := NewNameSet()

	for name := range s {
		if !other.Has(name) {
			result.Add(name)
		}
	}

	return result
}

// Sorted returns the members in lexical order.
func (s NameSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
