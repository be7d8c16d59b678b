package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dak2/methodray/graph"
)

// installBlock processes an attached `{ |x| ... }` or `do |x| ... end`
// block: a block frame is pushed, parameters install as locals, and when the
// receiver is known a block-parameter-typing box is registered so the
// declared signature can refine the parameter vertices before the body's
// call boxes resolve.
func (in *Installer) installBlock(blockNode *sitter.Node, recv graph.VertexID, method string, typed bool) {
	in.genv.Scopes.EnterBlock()
	defer in.genv.Scopes.Exit()

	params := in.installBlockParameters(blockNode.ChildByFieldName("parameters"))
	if typed && len(params) > 0 {
		in.genv.InstallBox(graph.NewBlockParamBox(in.genv.NextBoxID(), recv, method, params))
	}

	in.installBlockBody(blockNode)
}

// installBlockBody walks the block's statements. do-blocks expose a body
// field; brace blocks hold their expressions as direct children next to the
// parameter list.
func (in *Installer) installBlockBody(blockNode *sitter.Node) {
	if body := blockNode.ChildByFieldName("body"); body != nil {
		in.installStatements(body)
		return
	}
	for i := 0; i < int(blockNode.NamedChildCount()); i++ {
		child := blockNode.NamedChild(i)
		if child.Type() == "block_parameters" {
			continue
		}
		in.InstallNode(child)
	}
}
