// Package rbs consumes the output of the RBS signature ecosystem: harvested
// method records, the printed-form type notation they carry, and the
// versioned binary cache that persists them between runs.
package rbs

import (
	"strings"

	"github.com/dak2/methodray/types"
)

// ParseTypeForm converts a printed type form back into the type algebra. The
// grammar covers what the harvester emits: plain names, qualified names, a
// generic application `Name[A, B]`, a union `A | B`, and the keywords nil,
// void, untyped, top and bool.
func ParseTypeForm(form string) types.Type {
	form = strings.TrimSpace(form)
	if parts := splitTopLevel(form, '|'); len(parts) > 1 {
		members := make([]types.Type, len(parts))
		for i, p := range parts {
			members[i] = ParseTypeForm(p)
		}
		return types.NewUnion(members...)
	}
	return parseSingle(form)
}

func parseSingle(form string) types.Type {
	form = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(form), "::"))
	switch form {
	case "", "untyped", "top":
		return types.Bot{}
	case "nil", "void":
		return types.Nil{}
	case "bool":
		return types.Bool()
	}

	if open := strings.IndexByte(form, '['); open >= 0 && strings.HasSuffix(form, "]") {
		name := strings.TrimSpace(form[:open])
		inner := form[open+1 : len(form)-1]
		argForms := splitTopLevel(inner, ',')
		args := make([]types.Type, 0, len(argForms))
		for _, a := range argForms {
			args = append(args, ParseTypeForm(a))
		}
		return types.NewGeneric(name, args...)
	}

	if rest, ok := strings.CutPrefix(form, "singleton("); ok && strings.HasSuffix(rest, ")") {
		return types.NewSingleton(strings.TrimSuffix(rest, ")"))
	}

	return types.NewInstance(form)
}

// splitTopLevel splits on sep only outside bracket nesting, so
// "Hash[String, Integer] | nil" splits on the union bar but not the comma.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}
