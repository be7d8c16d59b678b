package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/scope"
)

// installClass pushes a class frame tagged with the constant path (kept
// verbatim for inline-qualified names like `class V1::User`), walks the
// body, and pops. Definitions yield no value vertex.
func (in *Installer) installClass(n *sitter.Node) (graph.VertexID, bool) {
	in.genv.Scopes.EnterClass(in.constantPath(n.ChildByFieldName("name")))
	defer in.genv.Scopes.Exit()
	in.installDefinitionBody(n)
	return 0, false
}

func (in *Installer) installModule(n *sitter.Node) (graph.VertexID, bool) {
	in.genv.Scopes.EnterModule(in.constantPath(n.ChildByFieldName("name")))
	defer in.genv.Scopes.Exit()
	in.installDefinitionBody(n)
	return 0, false
}

// installMethodDef pushes a method frame and a fresh local table (method
// bodies do not close over enclosing locals), installs parameters before the
// body walks, then restores the outer table.
func (in *Installer) installMethodDef(n *sitter.Node) (graph.VertexID, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return 0, false
	}
	in.genv.Scopes.EnterMethod(in.content(nameNode))
	defer in.genv.Scopes.Exit()

	outer := in.locals
	in.locals = scope.NewLocals()
	defer func() { in.locals = outer }()

	in.installMethodParameters(n.ChildByFieldName("parameters"))
	in.installDefinitionBody(n)
	return 0, false
}

// installDefinitionBody walks a definition's statements. The grammar exposes
// a body field on current versions; older trees keep the statements as
// direct children next to the name and parameter nodes.
func (in *Installer) installDefinitionBody(n *sitter.Node) {
	if body := n.ChildByFieldName("body"); body != nil {
		in.installStatements(body)
		return
	}
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	superclass := n.ChildByFieldName("superclass")
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if sameNode(child, name) || sameNode(child, params) || sameNode(child, superclass) {
			continue
		}
		in.InstallNode(child)
	}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// constantPath flattens a constant or scope_resolution node into the full
// "A::B::C" path. An absolute `::A` prefix normalizes to "A".
func (in *Installer) constantPath(n *sitter.Node) string {
	if n == nil {
		return "UnknownClass"
	}
	switch n.Type() {
	case "constant":
		return in.content(n)
	case "scope_resolution":
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return "UnknownClass"
		}
		name := in.content(nameNode)
		if scopeNode := n.ChildByFieldName("scope"); scopeNode != nil {
			return in.constantPath(scopeNode) + "::" + name
		}
		return name
	}
	return "UnknownClass"
}
