package graph

import "sort"

type edge struct {
	src VertexID
	dst VertexID
}

// EdgeUpdate is one committed change. Removals are computed against the
// previously committed baseline but the current engine applies additions
// only.
type EdgeUpdate struct {
	Src    VertexID
	Dst    VertexID
	Remove bool
}

// ChangeSet buffers pending edge additions and box-reschedule requests so a
// box's run observes a consistent snapshot: boxes write here, the driver
// commits. The set retains the previously committed edges as a baseline;
// Reinstall reports baseline edges that were not re-added as removals.
type ChangeSet struct {
	newEdges   []edge
	edges      []edge
	reschedule []BoxID
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{}
}

// AddEdge queues a pending edge addition.
func (c *ChangeSet) AddEdge(src, dst VertexID) {
	c.newEdges = append(c.newEdges, edge{src: src, dst: dst})
}

// Reschedule requests that a box be re-enqueued after commit.
func (c *ChangeSet) Reschedule(id BoxID) {
	c.reschedule = append(c.reschedule, id)
}

// TakeReschedules returns and clears the queued reschedule requests.
func (c *ChangeSet) TakeReschedules() []BoxID {
	out := c.reschedule
	c.reschedule = nil
	return out
}

// Reinstall commits the pending edges: it returns an ordered, de-duplicated
// sequence of additions not present in the baseline, plus removals for
// baseline edges that were not re-added, and swaps the pending set in as the
// new baseline.
func (c *ChangeSet) Reinstall() []EdgeUpdate {
	sort.Slice(c.newEdges, func(i, j int) bool {
		if c.newEdges[i].src != c.newEdges[j].src {
			return c.newEdges[i].src < c.newEdges[j].src
		}
		return c.newEdges[i].dst < c.newEdges[j].dst
	})
	deduped := c.newEdges[:0]
	for i, e := range c.newEdges {
		if i == 0 || e != c.newEdges[i-1] {
			deduped = append(deduped, e)
		}
	}
	c.newEdges = deduped

	var updates []EdgeUpdate
	for _, e := range c.newEdges {
		if !containsEdge(c.edges, e) {
			updates = append(updates, EdgeUpdate{Src: e.src, Dst: e.dst})
		}
	}
	for _, e := range c.edges {
		if !containsEdge(c.newEdges, e) {
			updates = append(updates, EdgeUpdate{Src: e.src, Dst: e.dst, Remove: true})
		}
	}

	c.edges, c.newEdges = c.newEdges, nil
	return updates
}

func containsEdge(edges []edge, e edge) bool {
	for _, have := range edges {
		if have == e {
			return true
		}
	}
	return false
}
