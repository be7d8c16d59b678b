// Package registry holds the method-signature database the inference engine
// resolves call receivers against.
package registry

import (
	"github.com/dak2/methodray/types"
)

// Method is a declared method signature: the return type plus the declared
// block-parameter types, when the method yields. Block-parameter entries may
// be type variables (Elem, K, V, ...) resolved later against the receiver's
// generic arguments.
type Method struct {
	Return      types.Type
	BlockParams []types.Type
}

// Registry maps (receiver type, method name) to a signature. Registration is
// idempotent at the key level: later writes overwrite earlier ones, which the
// loader uses to refine the catalog.
type Registry struct {
	methods map[string]Method
}

func New() *Registry {
	return &Registry{methods: make(map[string]Method)}
}

func key(recv types.Type, name string) string {
	return recv.Key() + "#" + name
}

// Register stores a signature without block parameters.
func (r *Registry) Register(recv types.Type, name string, ret types.Type) {
	r.RegisterWithBlock(recv, name, ret, nil)
}

// RegisterWithBlock stores a signature with declared block-parameter types.
func (r *Registry) RegisterWithBlock(recv types.Type, name string, ret types.Type, blockParams []types.Type) {
	r.methods[key(recv, name)] = Method{Return: ret, BlockParams: blockParams}
}

// Resolve looks up a signature for the receiver. The exact receiver is tried
// first; a Generic receiver (Array[Integer]) falls back to its unparameterized
// base (Array).
func (r *Registry) Resolve(recv types.Type, name string) (Method, bool) {
	if m, ok := r.methods[key(recv, name)]; ok {
		return m, true
	}
	switch t := recv.(type) {
	case types.Generic:
		base := types.Instance{Name: t.Name}
		if m, ok := r.methods[key(base, name)]; ok {
			return m, true
		}
	case types.Nil:
		// nil receivers resolve against NilClass signatures.
		if m, ok := r.methods[key(types.NewInstance("NilClass"), name)]; ok {
			return m, true
		}
	}
	return Method{}, false
}

// Len returns the number of registered signatures.
func (r *Registry) Len() int { return len(r.methods) }
