package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/diagnostics"
	"github.com/dak2/methodray/graph"
)

// installCall installs a method call: the receiver evaluates first, then the
// arguments, then the attached block, and finally the method-call box keyed
// on the receiver vertex. The diagnostic span covers the method name only,
// so editors highlight exactly the selector.
func (in *Installer) installCall(n *sitter.Node) (graph.VertexID, bool) {
	methodNode := n.ChildByFieldName("method")
	if methodNode == nil {
		return 0, false
	}
	method := in.content(methodNode)

	recvNode := n.ChildByFieldName("receiver")
	blockNode := n.ChildByFieldName("block")

	if recvNode == nil {
		// Implicit self receiver is not resolved, but arguments and
		// block bodies are still analyzed for nested findings.
		in.installArguments(n.ChildByFieldName("arguments"))
		if blockNode != nil {
			in.installBlock(blockNode, 0, method, false)
		}
		return 0, false
	}

	recv, ok := in.InstallNode(recvNode)
	if !ok {
		in.installArguments(n.ChildByFieldName("arguments"))
		if blockNode != nil {
			in.installBlock(blockNode, 0, method, false)
		}
		return 0, false
	}

	in.installArguments(n.ChildByFieldName("arguments"))

	ret := in.genv.NewVertex()
	if blockNode != nil {
		in.installBlock(blockNode, recv, method, true)
	}

	span := diagnostics.Span{Start: int(methodNode.StartByte()), End: int(methodNode.EndByte())}
	in.genv.InstallBox(graph.NewMethodCallBox(in.genv.NextBoxID(), recv, method, ret, &span))
	return ret, true
}

func (in *Installer) installArguments(args *sitter.Node) {
	if args == nil {
		return
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		in.InstallNode(args.NamedChild(i))
	}
}
