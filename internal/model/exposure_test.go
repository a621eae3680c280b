package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExposureSet_WildcardAcceptsEverything(t *testing.T) {
	exposed := Wildcard()

	assert.True(t, exposed.IsWildcard())

	candidates := NewNameSet("a", "b")
	accepted := exposed.Filter(candidates)

	assert.Equal(t, []string{"a", "b"}, accepted.Sorted())

	// Filter hands back a copy, not the caller's set.
	accepted.Add("c")
	assert.Equal(t, 2, candidates.Len())
}

func TestExposureSet_EnumeratedFiltersToIntersection(t *testing.T) {
	exposed := Enumerated(NewNameSet("a", "b"))

	assert.False(t, exposed.IsWildcard())
	assert.Equal(t, []string{"a"}, exposed.Filter(NewNameSet("a", "c")).Sorted())
	assert.Empty(t, exposed.Filter(NewNameSet("x")).Sorted())
}

func TestExposureSet_ZeroValueExposesNothing(t *testing.T) {
	var exposed ExposureSet

	assert.False(t, exposed.IsWildcard())
	assert.Equal(t, 0, exposed.Names().Len())
	assert.Empty(t, exposed.Filter(NewNameSet("a")).Sorted())
}

func TestIsValueName(t *testing.T) {
	assert.True(t, IsValueName("testLogin"))
	assert.True(t, IsValueName("a"))
	assert.False(t, IsValueName("Fixture"))
	assert.False(t, IsValueName(""))
	assert.False(t, IsValueName("_private"))
}
