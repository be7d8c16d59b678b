// Package env ties the inference engine together: one GlobalEnv per file
// analysis owns the graph store, the method registry, the scope manager, the
// box table with its ready queue, and the diagnostics collected along the
// way. Hosts wanting parallelism across files instantiate one GlobalEnv per
// worker; nothing here is shared.
package env

import (
	"fmt"
	"strings"

	"github.com/dak2/methodray/diagnostics"
	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/registry"
	"github.com/dak2/methodray/scope"
	"github.com/dak2/methodray/types"
)

// TypeError is an undefined-method or partial-union finding recorded during
// propagation. These are values, not errors: the drain never aborts on one.
type TypeError struct {
	Receiver types.Type
	Method   string
	Span     *diagnostics.Span
	Partial  bool
	Missing  []types.Type
}

// GlobalEnv is the single mutable state object of one file analysis.
type GlobalEnv struct {
	Store    *graph.Store
	Registry *registry.Registry
	Scopes   *scope.Manager

	boxes     map[graph.BoxID]graph.Box
	queue     []graph.BoxID
	queued    map[graph.BoxID]struct{}
	nextBoxID graph.BoxID

	TypeErrors []TypeError
}

func New() *GlobalEnv {
	return &GlobalEnv{
		Store:    graph.NewStore(),
		Registry: registry.New(),
		Scopes:   scope.NewManager(),
		boxes:    make(map[graph.BoxID]graph.Box),
		queued:   make(map[graph.BoxID]struct{}),
	}
}

// NewVertex allocates a mutable vertex in the store.
func (g *GlobalEnv) NewVertex() graph.VertexID { return g.Store.NewVertex() }

// NewSource allocates a fixed-type source in the store.
func (g *GlobalEnv) NewSource(t types.Type) graph.VertexID { return g.Store.NewSource(t) }

// TypesAt returns the current type set at a node.
func (g *GlobalEnv) TypesAt(id graph.VertexID) []types.Type { return g.Store.TypesAt(id) }

// ResolveMethod consults the registry, including the generic-base fallback.
func (g *GlobalEnv) ResolveMethod(recv types.Type, name string) (registry.Method, bool) {
	return g.Registry.Resolve(recv, name)
}

// ReportUndefinedMethod records an undefined-method finding.
func (g *GlobalEnv) ReportUndefinedMethod(recv types.Type, name string, span *diagnostics.Span) {
	g.TypeErrors = append(g.TypeErrors, TypeError{Receiver: recv, Method: name, Span: span})
}

// ReportPartialUnion records a union receiver that hit on some members and
// missed on others.
func (g *GlobalEnv) ReportPartialUnion(recv types.Type, name string, missing []types.Type, span *diagnostics.Span) {
	g.TypeErrors = append(g.TypeErrors, TypeError{
		Receiver: recv,
		Method:   name,
		Span:     span,
		Partial:  true,
		Missing:  missing,
	})
}

// NextBoxID hands out the next stable box identity.
func (g *GlobalEnv) NextBoxID() graph.BoxID {
	id := g.nextBoxID
	g.nextBoxID++
	return id
}

// InstallBox registers a box and enqueues it for its first run.
func (g *GlobalEnv) InstallBox(b graph.Box) {
	g.boxes[b.ID()] = b
	g.Enqueue(b.ID())
}

// Enqueue appends a box to the ready queue, skipping already-queued boxes.
func (g *GlobalEnv) Enqueue(id graph.BoxID) {
	if _, ok := g.queued[id]; ok {
		return
	}
	g.queue = append(g.queue, id)
	g.queued[id] = struct{}{}
}

// Apply commits a change set: edge additions run through the store (which
// propagates immediately); removals are stubbed in the current engine; the
// reschedule list is appended to the ready queue.
func (g *GlobalEnv) Apply(changes *graph.ChangeSet) {
	for _, update := range changes.Reinstall() {
		if update.Remove {
			// Edge retraction is not performed yet: additions only.
			continue
		}
		g.Store.AddEdge(update.Src, update.Dst)
	}
	for _, id := range changes.TakeReschedules() {
		g.Enqueue(id)
	}
}

// RunAll drains the ready queue. Each box runs outside the box table so it
// never aliases the mutable store through itself, then its change set is
// applied. The drain terminates because a box only advances when a new type
// has arrived and total type additions are bounded, with retries bounded per
// box.
func (g *GlobalEnv) RunAll() {
	for len(g.queue) > 0 {
		id := g.queue[0]
		g.queue = g.queue[1:]
		delete(g.queued, id)

		b, ok := g.boxes[id]
		if !ok {
			continue
		}
		delete(g.boxes, id)
		changes := graph.NewChangeSet()
		b.Run(g, changes)
		g.boxes[id] = b
		g.Apply(changes)
	}
}

// ShowAll dumps every node's type set, for debugging.
func (g *GlobalEnv) ShowAll() string {
	var lines []string
	var id graph.VertexID
	for {
		v, okV := g.Store.Vertex(id)
		src, okS := g.Store.Source(id)
		if !okV && !okS {
			break
		}
		if okV {
			lines = append(lines, fmt.Sprintf("Vertex %d: %s", id, v.Show()))
		} else {
			lines = append(lines, fmt.Sprintf("Source %d: %s", id, src.Show()))
		}
		id++
	}
	return strings.Join(lines, "\n")
}
