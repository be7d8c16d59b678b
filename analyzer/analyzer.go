// Package analyzer walks the parsed Ruby AST and installs the inference
// graph: it allocates vertices for expressions, wires edges for data flow,
// pushes and pops lexical frames, and registers constraint boxes for method
// calls and block parameters.
package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/env"
	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/scope"
)

// Installer builds the graph for one file. Dispatch is two-phase: leaf nodes
// (reads, self, literals) install directly; composite nodes (writes, calls,
// definitions) evaluate their children first so type information flows
// bottom-up deterministically.
type Installer struct {
	genv    *env.GlobalEnv
	locals  *scope.Locals
	changes *graph.ChangeSet
	source  []byte
}

func NewInstaller(genv *env.GlobalEnv, locals *scope.Locals, source []byte) *Installer {
	return &Installer{
		genv:    genv,
		locals:  locals,
		changes: graph.NewChangeSet(),
		source:  source,
	}
}

// Locals exposes the current binding table, for hosts inspecting inferred
// variable types after the drain.
func (in *Installer) Locals() *scope.Locals { return in.locals }

// InstallProgram walks the top-level statements of the program root.
func (in *Installer) InstallProgram(root *sitter.Node) {
	if root == nil {
		return
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		in.InstallNode(root.NamedChild(i))
	}
}

// InstallNode dispatches one AST node, returning the vertex holding the
// node's value when the node produces one.
func (in *Installer) InstallNode(n *sitter.Node) (graph.VertexID, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Type() {
	// Leaf dispatch: nothing below needs child evaluation.
	case "identifier":
		return in.installLocalRead(n)
	case "instance_variable":
		return in.installIvarRead(n)
	case "class_variable":
		return in.installClassVarRead(n)
	case "self":
		return in.installSelf(), true
	case "string", "integer", "float", "simple_symbol", "delimited_symbol",
		"hash", "nil", "true", "false", "regex", "range":
		return in.installLiteral(n)

	// Composite dispatch: children first.
	case "assignment":
		return in.installAssignment(n)
	case "call":
		return in.installCall(n)
	case "array":
		return in.installArray(n)
	case "class":
		return in.installClass(n)
	case "module":
		return in.installModule(n)
	case "method", "singleton_method":
		return in.installMethodDef(n)
	case "parenthesized_statements", "begin":
		return in.installLast(n)
	case "comment":
		return 0, false
	}
	return 0, false
}

// installStatements walks a statement list (a body_statement or similar),
// installing each child.
func (in *Installer) installStatements(n *sitter.Node) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		in.InstallNode(n.NamedChild(i))
	}
}

// installLast walks every child and yields the last child's vertex, the
// value of a parenthesized or begin expression.
func (in *Installer) installLast(n *sitter.Node) (graph.VertexID, bool) {
	var last graph.VertexID
	ok := false
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if v, has := in.InstallNode(n.NamedChild(i)); has {
			last, ok = v, true
		}
	}
	return last, ok
}

func (in *Installer) content(n *sitter.Node) string {
	return n.Content(in.source)
}

// Finish commits the buffered change set and drains the box queue.
func (in *Installer) Finish() {
	in.genv.Apply(in.changes)
	in.changes = graph.NewChangeSet()
	in.genv.RunAll()
}
