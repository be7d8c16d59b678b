package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/types"
)

// installMethodParameters installs each declared parameter as a local
// binding before the body walks. Required parameters stay untyped so the
// body checks against whatever arrives; optional parameters take their
// default's type; rest and keyword-rest parameters seed Array and Hash.
func (in *Installer) installMethodParameters(paramsNode *sitter.Node) {
	if paramsNode == nil {
		return
	}
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		in.installParameter(paramsNode.NamedChild(i))
	}
}

// installBlockParameters applies the same rules inside a block frame and
// reports the plain positional parameter vertices, in order, back to the
// caller so a block-parameter-typing box can refine them.
func (in *Installer) installBlockParameters(paramsNode *sitter.Node) []graph.VertexID {
	if paramsNode == nil {
		return nil
	}
	var ordered []graph.VertexID
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		v, ok := in.installParameter(child)
		if ok && child.Type() == "identifier" {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

func (in *Installer) installParameter(n *sitter.Node) (graph.VertexID, bool) {
	switch n.Type() {
	case "identifier":
		return in.installRequiredParameter(in.content(n)), true
	case "optional_parameter", "keyword_parameter":
		return in.installDefaultedParameter(n)
	case "splat_parameter":
		return in.installSeededParameter(n, types.Array())
	case "hash_splat_parameter":
		return in.installSeededParameter(n, types.Hash())
	case "block_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			return in.installRequiredParameter(in.content(name)), true
		}
	}
	return 0, false
}

// installRequiredParameter allocates an untyped vertex; method calls on it
// are not errors until a type arrives.
func (in *Installer) installRequiredParameter(name string) graph.VertexID {
	v := in.genv.NewVertex()
	in.locals.Bind(name, v)
	in.genv.Scopes.SetLocal(name, v)
	return v
}

// installDefaultedParameter evaluates the default expression and wires it
// into the parameter vertex. The edge goes through the store directly so the
// default's type is already visible when the body installs.
func (in *Installer) installDefaultedParameter(n *sitter.Node) (graph.VertexID, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return 0, false
	}
	v := in.installRequiredParameter(in.content(nameNode))
	if def, ok := in.InstallNode(n.ChildByFieldName("value")); ok {
		in.genv.Store.AddEdge(def, v)
	}
	return v, true
}

// installSeededParameter handles *rest and **kwrest: the vertex is seeded
// with the collection class the runtime always supplies. Anonymous rest
// parameters install no binding.
func (in *Installer) installSeededParameter(n *sitter.Node, seed types.Type) (graph.VertexID, bool) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return 0, false
	}
	v := in.installRequiredParameter(in.content(nameNode))
	in.genv.Store.AddEdge(in.genv.NewSource(seed), v)
	return v, true
}
