// Package graph implements the demand-driven dataflow graph at the core of
// the type inference engine: vertex and source arenas, forward type
// propagation, the change set that buffers pending edge additions, and the
// reactive constraint boxes attached to the graph.
package graph

import (
	"sort"
	"strings"

	"github.com/dak2/methodray/types"
)

// VertexID is a dense integer identifying a node in the graph arena. IDs are
// monotone across the vertex and source arenas so one ID space identifies
// either uniquely.
type VertexID int

// Source is a graph node whose type is fixed at creation and never changes.
// Sources inject types: literals, signature return types, and synthetic
// sources used to feed an inferred type into a mutable vertex.
type Source struct {
	ID   VertexID
	Type types.Type
}

func (s *Source) Show() string { return s.Type.String() }

type typeEntry struct {
	typ     types.Type
	sources map[VertexID]struct{}
}

// Vertex is a mutable graph node that accumulates a set of concrete types.
// Each arrived type is annotated with the Source IDs that introduced it, in
// support of future retraction. The type set is monotone: entries are only
// added.
type Vertex struct {
	ID      VertexID
	entries map[string]*typeEntry
	order   []string
	next    map[VertexID]struct{}
}

func newVertex(id VertexID) *Vertex {
	return &Vertex{
		ID:      id,
		entries: make(map[string]*typeEntry),
		next:    make(map[VertexID]struct{}),
	}
}

// AddNext records an outgoing edge.
func (v *Vertex) AddNext(id VertexID) { v.next[id] = struct{}{} }

// Successors returns the outgoing edge targets.
func (v *Vertex) Successors() []VertexID {
	out := make([]VertexID, 0, len(v.next))
	for id := range v.next {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Types returns the accumulated type set in arrival order.
func (v *Vertex) Types() []types.Type {
	out := make([]types.Type, 0, len(v.order))
	for _, key := range v.order {
		out = append(out, v.entries[key].typ)
	}
	return out
}

// HasType reports whether the vertex already carries the given type.
func (v *Vertex) HasType(t types.Type) bool {
	_, ok := v.entries[t.Key()]
	return ok
}

type propagation struct {
	next  VertexID
	added []types.Type
}

// onTypeAdded inserts incoming types, recording src among each type's
// provenance sources. Types already present produce no downstream work; the
// returned propagations carry only newly added types, which bounds every
// vertex to gaining each type at most once and makes cycles safe.
func (v *Vertex) onTypeAdded(src VertexID, incoming []types.Type) []propagation {
	var added []types.Type
	for _, t := range incoming {
		if _, isBot := t.(types.Bot); isBot {
			// Bot carries no information and stays represented by absence.
			continue
		}
		key := t.Key()
		if entry, ok := v.entries[key]; ok {
			entry.sources[src] = struct{}{}
			continue
		}
		v.entries[key] = &typeEntry{typ: t, sources: map[VertexID]struct{}{src: {}}}
		v.order = append(v.order, key)
		added = append(added, t)
	}
	if len(added) == 0 {
		return nil
	}
	out := make([]propagation, 0, len(v.next))
	for _, next := range v.Successors() {
		out = append(out, propagation{next: next, added: added})
	}
	return out
}

// Show renders the accumulated set: "untyped" when empty, the single printed
// form for one type, "(A | B)" with sorted members otherwise.
func (v *Vertex) Show() string {
	if len(v.order) == 0 {
		return "untyped"
	}
	printed := make([]string, 0, len(v.order))
	for _, key := range v.order {
		printed = append(printed, v.entries[key].typ.String())
	}
	sort.Strings(printed)
	if len(printed) == 1 {
		return printed[0]
	}
	return "(" + strings.Join(printed, " | ") + ")"
}
