package scope

import "github.com/dak2/methodray/graph"

// Locals is the flat name→vertex map for the procedure the producer is
// currently installing. Rebinding a name replaces the vertex outright — the
// previous binding stays reachable only through references captured before
// the write.
type Locals struct {
	vars map[string]graph.VertexID
}

func NewLocals() *Locals {
	return &Locals{vars: make(map[string]graph.VertexID)}
}

// Bind registers or replaces a variable binding.
func (l *Locals) Bind(name string, v graph.VertexID) {
	l.vars[name] = v
}

// Lookup returns the current binding for a name.
func (l *Locals) Lookup(name string) (graph.VertexID, bool) {
	v, ok := l.vars[name]
	return v, ok
}

// Names returns the bound variable names.
func (l *Locals) Names() []string {
	out := make([]string, 0, len(l.vars))
	for name := range l.vars {
		out = append(out, name)
	}
	return out
}
