package model

// ExposureSet describes a module's declared export surface: either everything
// (the `..` wildcard) or a finite set of value-level identifiers. A zero
// ExposureSet is an empty enumeration.
type ExposureSet struct {
	wildcard bool
	names    NameSet
}

// Wildcard returns the exposure set of a module exposing everything.
func Wildcard() ExposureSet {
	return ExposureSet{wildcard: true}
}

// Enumerated returns the exposure set of a module exposing exactly names.
func Enumerated(names NameSet) ExposureSet {
	return ExposureSet{names: names}
}

// IsWildcard reports whether the module exposes everything.
func (e ExposureSet) IsWildcard() bool {
	return e.wildcard
}

// Names returns the enumerated exports. It is only meaningful when the set is
// not a wildcard; a wildcard never carries a partial enumeration.
func (e ExposureSet) Names() NameSet {
	if e.names == nil {
		return NewNameSet()
	}

	return e.names
}

// Filter returns the candidates accepted by this export surface: all of them
// for a wildcard, the intersection otherwise.
func (e ExposureSet) Filter(candidates NameSet) NameSet {
	if e.wildcard {
		return candidates.Clone()
	}

	return e.Names().Intersect(candidates)
}
