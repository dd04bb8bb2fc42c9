package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveFacetsEqualIsSetEquality(t *testing.T) {
	a := ActiveFacets{TopicsFacet: {"Science", "Math"}, CostFacet: {}}
	b := ActiveFacets{TopicsFacet: {"Math", "Science", "Math"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(ActiveFacets{TopicsFacet: {"Math"}}))
	assert.False(t, a.Equal(ActiveFacets{OfferedByFacet: {"Science", "Math"}}))
}

func TestActiveFacetsCanonical(t *testing.T) {
	a := ActiveFacets{TopicsFacet: {"Math", "", "Math", "Art"}, CostFacet: nil}
	assert.Equal(t, ActiveFacets{TopicsFacet: {"Math", "Art"}}, a.Canonical())
	assert.True(t, ActiveFacets{CostFacet: {}}.IsEmpty())
}

func TestActiveFacetsCloneIsIndependent(t *testing.T) {
	a := ActiveFacets{TopicsFacet: {"Math"}}
	c := a.Clone()
	c[TopicsFacet][0] = "Art"
	assert.Equal(t, "Math", a[TopicsFacet][0])
}

func TestFacetGroupKeys(t *testing.T) {
	g := FacetGroup{Name: TopicsFacet, Buckets: []Bucket{{Key: "a", Count: 2}, {Key: "b", Count: 1}}}
	assert.Equal(t, []string{"a", "b"}, g.Keys())
	assert.True(t, g.Has("b"))
	assert.False(t, g.Has("c"))
}

func TestActiveFacetsKnown(t *testing.T) {
	a := ActiveFacets{TopicsFacet: {"Math"}, "platform": {"edx"}}
	assert.Equal(t, ActiveFacets{TopicsFacet: {"Math"}}, a.Known())
	assert.True(t, IsKnownFacetGroup(CostFacet))
	assert.False(t, IsKnownFacetGroup("platform"))
}
