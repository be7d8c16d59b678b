package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/types"
)

// installAssignment handles `x = expr`, `@x = expr` and `@@x = expr`. The
// right-hand side installs first so its vertex exists before the binding.
func (in *Installer) installAssignment(n *sitter.Node) (graph.VertexID, bool) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil {
		return 0, false
	}
	value, ok := in.InstallNode(right)
	if !ok {
		return 0, false
	}

	switch left.Type() {
	case "identifier":
		return in.installLocalWrite(in.content(left), value), true
	case "instance_variable":
		in.genv.Scopes.SetInstanceVar(in.content(left), value)
		return value, true
	case "class_variable":
		in.genv.Scopes.SetClassVar(in.content(left), value)
		return value, true
	}
	return 0, false
}

// installLocalWrite allocates a fresh vertex for the binding and queues the
// value edge; rebinding a name replaces the old vertex outright.
func (in *Installer) installLocalWrite(name string, value graph.VertexID) graph.VertexID {
	bound := in.genv.NewVertex()
	in.locals.Bind(name, bound)
	in.genv.Scopes.SetLocal(name, bound)
	in.changes.AddEdge(value, bound)
	return bound
}

// installLocalRead yields the current binding. An unbound identifier may be
// an implicit-self call, which this engine does not resolve, so it produces
// no vertex.
func (in *Installer) installLocalRead(n *sitter.Node) (graph.VertexID, bool) {
	return in.locals.Lookup(in.content(n))
}

// installIvarRead returns the value vertex stored in the nearest enclosing
// class/module frame. A read before any write yields no vertex.
func (in *Installer) installIvarRead(n *sitter.Node) (graph.VertexID, bool) {
	return in.genv.Scopes.LookupInstanceVar(in.content(n))
}

func (in *Installer) installClassVarRead(n *sitter.Node) (graph.VertexID, bool) {
	return in.genv.Scopes.LookupClassVar(in.content(n))
}

// installSelf allocates a source typed with the qualified name of the
// enclosing class/module nesting, or Object at top level.
func (in *Installer) installSelf() graph.VertexID {
	name := in.genv.Scopes.QualifiedSelf()
	if name == "" {
		name = "Object"
	}
	return in.genv.NewSource(types.NewInstance(name))
}
