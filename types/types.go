package types

import (
	"sort"
	"strings"
)

// Type is a member of the closed set of type shapes the inference graph
// propagates: Instance, Generic, Singleton, Nil, Union and Bot.
//
// String returns the printed form ("String", "Array[Integer]",
// "String | Integer", "untyped"). Key returns a canonical identity used for
// map keys and equality; it treats Union members as an unordered set.
type Type interface {
	String() string
	Key() string
	sealed()
}

// Instance is a monomorphic class instance (String, Api::User).
type Instance struct {
	Name QualifiedName
}

// Generic is a parameterized instance (Array[Integer], Hash[K, V]).
type Generic struct {
	Name QualifiedName
	Args []Type
}

// Singleton is the class object itself, for class-level calls.
type Singleton struct {
	Name QualifiedName
}

// Nil is the nil value.
type Nil struct{}

// Union is an unordered set of at least two alternatives. Construct through
// NewUnion so members stay flat and deduplicated.
type Union struct {
	Members []Type
}

// Bot is "no information / untyped". It is absorbed by unions and is
// represented at vertices by absence of any type.
type Bot struct{}

func (Instance) sealed()  {}
func (Generic) sealed()   {}
func (Singleton) sealed() {}
func (Nil) sealed()       {}
func (Union) sealed()     {}
func (Bot) sealed()       {}

func (t Instance) String() string { return t.Name.String() }

func (t Generic) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name.String() + "[" + strings.Join(args, ", ") + "]"
}

func (t Singleton) String() string { return "singleton(" + t.Name.String() + ")" }

func (Nil) String() string { return "nil" }

func (t Union) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (Bot) String() string { return "untyped" }

func (t Instance) Key() string  { return t.Name.String() }
func (t Singleton) Key() string { return "singleton(" + t.Name.String() + ")" }
func (Nil) Key() string         { return "nil" }
func (Bot) Key() string         { return "untyped" }

func (t Generic) Key() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Key()
	}
	return t.Name.String() + "[" + strings.Join(args, ", ") + "]"
}

// Key for a union sorts member keys so equality ignores member order.
func (t Union) Key() string {
	keys := make([]string, len(t.Members))
	for i, m := range t.Members {
		keys[i] = m.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, " | ")
}

// Equal reports type identity under the Key relation.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// NewInstance builds an Instance type from a constant path.
func NewInstance(name string) Instance {
	return Instance{Name: NewQualifiedName(name)}
}

// NewSingleton builds a Singleton type from a constant path.
func NewSingleton(name string) Singleton {
	return Singleton{Name: NewQualifiedName(name)}
}

// NewGeneric builds a parameterized instance.
func NewGeneric(name string, args ...Type) Generic {
	return Generic{Name: NewQualifiedName(name), Args: args}
}

// NewUnion flattens nested unions, drops Bot, deduplicates members and
// unwraps a resulting singleton. An empty member set yields Bot.
func NewUnion(members ...Type) Type {
	var flat []Type
	seen := map[string]bool{}
	var collect func(ts []Type)
	collect = func(ts []Type) {
		for _, t := range ts {
			switch v := t.(type) {
			case nil:
			case Union:
				collect(v.Members)
			case Bot:
			default:
				if key := t.Key(); !seen[key] {
					seen[key] = true
					flat = append(flat, t)
				}
			}
		}
	}
	collect(members)
	switch len(flat) {
	case 0:
		return Bot{}
	case 1:
		return flat[0]
	}
	return Union{Members: flat}
}

// QualifiedNameOf returns the receiver class path for named types.
func QualifiedNameOf(t Type) (QualifiedName, bool) {
	switch v := t.(type) {
	case Instance:
		return v.Name, true
	case Generic:
		return v.Name, true
	case Singleton:
		return v.Name, true
	}
	return QualifiedName{}, false
}

// BaseClassName returns the full class path without type arguments.
func BaseClassName(t Type) (string, bool) {
	name, ok := QualifiedNameOf(t)
	if !ok {
		return "", false
	}
	return name.String(), true
}

// TypeArgs returns the arguments of a Generic type.
func TypeArgs(t Type) []Type {
	if g, ok := t.(Generic); ok {
		return g.Args
	}
	return nil
}

// Convenience builders for the standard classes.

func String() Type     { return Instance{Name: SimpleName("String")} }
func Integer() Type    { return Instance{Name: SimpleName("Integer")} }
func Float() Type      { return Instance{Name: SimpleName("Float")} }
func Symbol() Type     { return Instance{Name: SimpleName("Symbol")} }
func Array() Type      { return Instance{Name: SimpleName("Array")} }
func Hash() Type       { return Instance{Name: SimpleName("Hash")} }
func Range() Type      { return Instance{Name: SimpleName("Range")} }
func Regexp() Type     { return Instance{Name: SimpleName("Regexp")} }
func TrueClass() Type  { return Instance{Name: SimpleName("TrueClass")} }
func FalseClass() Type { return Instance{Name: SimpleName("FalseClass")} }

// Bool is the RBS bool: TrueClass | FalseClass.
func Bool() Type { return NewUnion(TrueClass(), FalseClass()) }

// ArrayOf builds Array[elem].
func ArrayOf(elem Type) Type {
	return Generic{Name: SimpleName("Array"), Args: []Type{elem}}
}

// HashOf builds Hash[key, value].
func HashOf(key, value Type) Type {
	return Generic{Name: SimpleName("Hash"), Args: []Type{key, value}}
}
