package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/graph"
	"github.com/dak2/methodray/types"
)

// installLiteral allocates a source carrying the literal's class. Range
// endpoints are walked first so calls nested inside them still resolve; hash
// literals stay unparameterized.
func (in *Installer) installLiteral(n *sitter.Node) (graph.VertexID, bool) {
	switch n.Type() {
	case "string":
		return in.genv.NewSource(types.String()), true
	case "integer":
		return in.genv.NewSource(types.Integer()), true
	case "float":
		return in.genv.NewSource(types.Float()), true
	case "simple_symbol", "delimited_symbol":
		return in.genv.NewSource(types.Symbol()), true
	case "hash":
		in.installChildren(n)
		return in.genv.NewSource(types.Hash()), true
	case "nil":
		return in.genv.NewSource(types.Nil{}), true
	case "true":
		return in.genv.NewSource(types.TrueClass()), true
	case "false":
		return in.genv.NewSource(types.FalseClass()), true
	case "regex":
		return in.genv.NewSource(types.Regexp()), true
	case "range":
		in.installChildren(n)
		return in.genv.NewSource(types.Range()), true
	}
	return 0, false
}

func (in *Installer) installChildren(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "pair" {
			in.installChildren(child)
			continue
		}
		in.InstallNode(child)
	}
}

// installArray installs each element and infers the element type from the
// types known at install time: no elements yields bare Array, one element
// type yields Array[T], several yield Array[T1 | T2 | ...].
func (in *Installer) installArray(n *sitter.Node) (graph.VertexID, bool) {
	var elems []types.Type
	seen := map[string]bool{}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		v, ok := in.InstallNode(n.NamedChild(i))
		if !ok {
			continue
		}
		for _, t := range in.genv.TypesAt(v) {
			if key := t.Key(); !seen[key] {
				seen[key] = true
				elems = append(elems, t)
			}
		}
	}
	switch len(elems) {
	case 0:
		return in.genv.NewSource(types.Array()), true
	case 1:
		return in.genv.NewSource(types.ArrayOf(elems[0])), true
	}
	return in.genv.NewSource(types.ArrayOf(types.NewUnion(elems...))), true
}
