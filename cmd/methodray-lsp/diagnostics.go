package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dak2/methodray/diagnostics"
)

// checkDocument writes the tracked buffer to a temporary file, runs the
// driver on it, and publishes the converted diagnostics for the document's
// URI.
func (s *server) checkDocument(ctx context.Context, uri string) error {
	text, ok := s.documents[uri]
	if !ok {
		return nil
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("methodray-%s.rb", uuid.NewString()))
	if err := os.WriteFile(tmp, []byte(text), 0o600); err != nil {
		return fmt.Errorf("writing temp buffer: %w", err)
	}
	defer os.Remove(tmp)

	diags, err := s.checker.CheckFile(ctx, tmp)
	if err != nil {
		s.logger.Printf("type check failed for %s: %v", uri, err)
		return nil
	}

	converted := make([]lspDiagnostic, 0, len(diags))
	for _, d := range diags {
		converted = append(converted, toLSPDiagnostic(d))
	}
	return s.publishDiagnostics(uri, converted)
}

func (s *server) publishDiagnostics(uri string, diags []lspDiagnostic) error {
	if diags == nil {
		diags = []lspDiagnostic{}
	}
	return s.notify("textDocument/publishDiagnostics", publishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// toLSPDiagnostic converts 1-indexed line/column plus highlight length into
// the protocol's zero-indexed range.
func toLSPDiagnostic(d diagnostics.Diagnostic) lspDiagnostic {
	severity := lspSeverityError
	if d.Severity == diagnostics.SeverityWarning {
		severity = lspSeverityWarning
	}
	line := max(d.Line-1, 0)
	character := max(d.Column-1, 0)
	length := max(d.Length, 1)
	return lspDiagnostic{
		Range: lspRange{
			Start: lspPosition{Line: line, Character: character},
			End:   lspPosition{Line: line, Character: character + length},
		},
		Severity: severity,
		Source:   "methodray",
		Message:  d.Message,
	}
}
