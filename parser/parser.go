// Package parser wraps the tree-sitter Ruby grammar behind the narrow
// surface the checker needs: parse bytes, hand back the AST root, and turn
// syntax errors into a value the driver can abort a file on.
package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"
)

// Result holds a parsed tree. The tree keeps the source alive for node
// content extraction; callers must not outlive it past the analysis.
type Result struct {
	Tree *sitter.Tree
	Root *sitter.Node
}

// SyntaxError describes one ERROR or MISSING region the grammar reported.
type SyntaxError struct {
	StartByte int
	EndByte   int
	Message   string
}

// ParseError aborts analysis of a file; it carries the grammar's error
// regions unchanged.
type ParseError struct {
	Errors []SyntaxError
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, se := range e.Errors {
		msgs[i] = se.Message
	}
	return "syntax error: " + strings.Join(msgs, "; ")
}

// Parse parses Ruby source. A tree containing ERROR or MISSING nodes yields
// a *ParseError; the partial tree is still returned for hosts that want it.
func Parse(ctx context.Context, source []byte) (*Result, error) {
	p := sitter.NewParser()
	p.SetLanguage(ruby.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing ruby source: %w", err)
	}

	result := &Result{Tree: tree, Root: tree.RootNode()}
	if result.Root.HasError() {
		return result, &ParseError{Errors: collectSyntaxErrors(result.Root)}
	}
	return result, nil
}

func collectSyntaxErrors(root *sitter.Node) []SyntaxError {
	var errs []SyntaxError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" {
			errs = append(errs, SyntaxError{
				StartByte: int(n.StartByte()),
				EndByte:   int(n.EndByte()),
				Message:   fmt.Sprintf("unexpected input at byte %d", n.StartByte()),
			})
			return
		}
		if n.IsMissing() {
			errs = append(errs, SyntaxError{
				StartByte: int(n.StartByte()),
				EndByte:   int(n.EndByte()),
				Message:   fmt.Sprintf("missing %s at byte %d", n.Type(), n.StartByte()),
			})
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	if len(errs) == 0 {
		errs = append(errs, SyntaxError{Message: "malformed input"})
	}
	return errs
}
