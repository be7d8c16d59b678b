package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dak2/methodray/types"
)

func TestSourceShow(t *testing.T) {
	s := NewStore()
	id := s.NewSource(types.String())
	src, ok := s.Source(id)
	assert.True(t, ok)
	assert.Equal(t, "String", src.Show())
}

func TestVertexEmptyIsUntyped(t *testing.T) {
	s := NewStore()
	id := s.NewVertex()
	assert.Equal(t, "untyped", s.Show(id))
	assert.Empty(t, s.TypesAt(id))
}

func TestEdgePropagation(t *testing.T) {
	s := NewStore()
	src := s.NewSource(types.String())
	v := s.NewVertex()

	s.AddEdge(src, v)

	assert.Equal(t, "String", s.Show(v))
}

func TestChainPropagation(t *testing.T) {
	s := NewStore()
	src := s.NewSource(types.String())
	v1 := s.NewVertex()
	v2 := s.NewVertex()

	s.AddEdge(src, v1)
	s.AddEdge(v1, v2)

	assert.Equal(t, "String", s.Show(v1))
	assert.Equal(t, "String", s.Show(v2))
}

func TestUnionAccumulation(t *testing.T) {
	s := NewStore()
	v := s.NewVertex()

	s.AddEdge(s.NewSource(types.String()), v)
	s.AddEdge(s.NewSource(types.Integer()), v)

	assert.Equal(t, "(Integer | String)", s.Show(v))
}

func TestIdempotentEdges(t *testing.T) {
	s := NewStore()
	src := s.NewSource(types.String())
	v1 := s.NewVertex()
	v2 := s.NewVertex()
	s.AddEdge(v1, v2)

	s.AddEdge(src, v1)
	before := s.Show(v2)

	// adding the same edge again changes nothing downstream
	s.AddEdge(src, v1)
	assert.Equal(t, before, s.Show(v2))
	assert.Len(t, s.TypesAt(v2), 1)
}

func TestMonotonicity(t *testing.T) {
	s := NewStore()
	v := s.NewVertex()

	s.AddEdge(s.NewSource(types.String()), v)
	first := s.TypesAt(v)

	s.AddEdge(s.NewSource(types.Integer()), v)
	second := s.TypesAt(v)

	// every earlier member is still present
	for _, earlier := range first {
		found := false
		for _, now := range second {
			if types.Equal(earlier, now) {
				found = true
			}
		}
		assert.True(t, found, "type %s disappeared", earlier)
	}
}

func TestCyclePropagationTerminates(t *testing.T) {
	s := NewStore()
	v1 := s.NewVertex()
	v2 := s.NewVertex()

	// cycle first, then inject a type: propagation must settle
	s.AddEdge(v1, v2)
	s.AddEdge(v2, v1)
	s.AddEdge(s.NewSource(types.String()), v1)

	assert.Equal(t, "String", s.Show(v1))
	assert.Equal(t, "String", s.Show(v2))
}

func TestSelfLoopTerminates(t *testing.T) {
	s := NewStore()
	v := s.NewVertex()
	s.AddEdge(v, v)
	s.AddEdge(s.NewSource(types.Integer()), v)
	assert.Equal(t, "Integer", s.Show(v))
}

func TestSourcesNeverChange(t *testing.T) {
	s := NewStore()
	fixed := s.NewSource(types.String())
	other := s.NewSource(types.Integer())

	// an edge into a source must not alter its type
	s.AddEdge(other, fixed)

	src, _ := s.Source(fixed)
	assert.Equal(t, "String", src.Show())
}

func TestProvenanceRecordedPerSource(t *testing.T) {
	s := NewStore()
	v := s.NewVertex()
	a := s.NewSource(types.String())
	b := s.NewSource(types.String())

	s.AddEdge(a, v)
	s.AddEdge(b, v)

	vtx, _ := s.Vertex(v)
	assert.True(t, vtx.HasType(types.String()))
	assert.Len(t, vtx.Types(), 1)
	assert.Len(t, vtx.entries[types.String().Key()].sources, 2)
}
