package graph

import (
	"github.com/dak2/methodray/diagnostics"
	"github.com/dak2/methodray/registry"
	"github.com/dak2/methodray/types"
)

// BoxID is the stable identity of a reactive constraint box.
type BoxID int

// maxCallRetries bounds how many times a method-call box re-queues itself
// while its receiver is still untyped. A tunable, not an invariant.
const maxCallRetries = 3

// Env is the view of the global environment a box reads while running. The
// concrete implementation lives in the env package; the indirection keeps the
// box contract at "run reads the environment and writes a change set".
type Env interface {
	TypesAt(id VertexID) []types.Type
	NewSource(t types.Type) VertexID
	ResolveMethod(recv types.Type, name string) (registry.Method, bool)
	ReportUndefinedMethod(recv types.Type, name string, span *diagnostics.Span)
	ReportPartialUnion(recv types.Type, name string, missing []types.Type, span *diagnostics.Span)
}

// Box is a reactive computation attached to the graph. Run reads the
// environment and writes pending edges and reschedule requests into the
// change set; it never mutates the store directly.
type Box interface {
	ID() BoxID
	Run(env Env, changes *ChangeSet)
	ReturnVertex() VertexID
}

// MethodCallBox resolves a method call against the receiver's current type
// set and feeds the declared return type into the call's return vertex.
type MethodCallBox struct {
	id      BoxID
	recv    VertexID
	method  string
	ret     VertexID
	span    *diagnostics.Span
	retries int
}

func NewMethodCallBox(id BoxID, recv VertexID, method string, ret VertexID, span *diagnostics.Span) *MethodCallBox {
	return &MethodCallBox{id: id, recv: recv, method: method, ret: ret, span: span}
}

func (b *MethodCallBox) ID() BoxID              { return b.id }
func (b *MethodCallBox) ReturnVertex() VertexID { return b.ret }

func (b *MethodCallBox) Run(env Env, changes *ChangeSet) {
	recvTypes := env.TypesAt(b.recv)

	// Empty-receiver backoff: the receiver may simply not have been typed
	// yet (a block parameter waiting on its typing box, say). Re-queue a
	// bounded number of times, then drop silently.
	if len(recvTypes) == 0 {
		if b.retries < maxCallRetries {
			b.retries++
			changes.Reschedule(b.id)
		}
		return
	}

	for _, recvType := range recvTypes {
		b.resolveOne(env, changes, recvType)
	}
}

// resolveOne handles a single receiver type. A union receiver produces one
// resolution per member; when some members hit and some miss, a single
// partial-union warning is recorded instead of per-member errors (the
// all-miss case still reports each member).
func (b *MethodCallBox) resolveOne(env Env, changes *ChangeSet, recvType types.Type) {
	switch t := recvType.(type) {
	case types.Bot:
		// Unknown receivers silently pass.
		return
	case types.Union:
		var missing []types.Type
		hits := 0
		for _, member := range t.Members {
			if _, ok := member.(types.Bot); ok {
				continue
			}
			if m, ok := env.ResolveMethod(member, b.method); ok {
				hits++
				changes.AddEdge(env.NewSource(m.Return), b.ret)
			} else {
				missing = append(missing, member)
			}
		}
		if len(missing) == 0 {
			return
		}
		if hits > 0 {
			env.ReportPartialUnion(t, b.method, missing, b.span)
			return
		}
		for _, member := range missing {
			env.ReportUndefinedMethod(member, b.method, b.span)
		}
	default:
		if m, ok := env.ResolveMethod(recvType, b.method); ok {
			changes.AddEdge(env.NewSource(m.Return), b.ret)
			return
		}
		env.ReportUndefinedMethod(recvType, b.method, b.span)
	}
}

// BlockParamBox injects declared block-parameter types into the vertices of
// a block's parameters, substituting type variables from the receiver's
// generic arguments. It emits no diagnostics; its only role is to type block
// parameters so the rest of the graph resolves.
type BlockParamBox struct {
	id     BoxID
	recv   VertexID
	method string
	params []VertexID
}

func NewBlockParamBox(id BoxID, recv VertexID, method string, params []VertexID) *BlockParamBox {
	return &BlockParamBox{id: id, recv: recv, method: method, params: params}
}

func (b *BlockParamBox) ID() BoxID { return b.id }

// ReturnVertex for a block-parameter box is its first parameter vertex; the
// box produces no call result of its own.
func (b *BlockParamBox) ReturnVertex() VertexID {
	if len(b.params) == 0 {
		return -1
	}
	return b.params[0]
}

func (b *BlockParamBox) Run(env Env, changes *ChangeSet) {
	for _, recvType := range env.TypesAt(b.recv) {
		m, ok := env.ResolveMethod(recvType, b.method)
		if !ok || len(m.BlockParams) == 0 {
			continue
		}
		for i, declared := range m.BlockParams {
			if i >= len(b.params) {
				break
			}
			resolved, ok := substituteTypeVar(declared, recvType)
			if !ok {
				// Receiver not generic or no mapping: leave the
				// parameter untyped rather than guess.
				continue
			}
			changes.AddEdge(env.NewSource(resolved), b.params[i])
		}
	}
}

// typeVarIndex maps the recognized type-variable names to the generic
// argument they select. Single-element variables select index 0; the Hash
// key/value pair selects 0 and 1.
var typeVarIndex = map[string]int{
	"Elem":    0,
	"T":       0,
	"Element": 0,
	"K":       0,
	"Key":     0,
	"V":       1,
	"Value":   1,
}

// hashOnlyVars are variable names that only make sense on two-argument
// containers; for other containers they do not fall back to index 0.
var hashOnlyVars = map[string]bool{
	"K": true, "Key": true, "V": true, "Value": true,
}

// substituteTypeVar resolves a declared block-parameter type against the
// receiver. Concrete declared types pass through unchanged. A type-variable
// name substitutes from the receiver's generic arguments: Array[Elem] binds
// index 0, Hash[K, V] binds K=0 and V=1, and other containers bind
// single-argument variable names to index 0.
func substituteTypeVar(declared types.Type, recv types.Type) (types.Type, bool) {
	inst, ok := declared.(types.Instance)
	if !ok || !inst.Name.IsSimple() {
		return declared, true
	}
	idx, isVar := typeVarIndex[inst.Name.Name()]
	if !isVar {
		return declared, true
	}
	g, ok := recv.(types.Generic)
	if !ok {
		return nil, false
	}
	base := g.Name.String()
	if base != "Array" && base != "Hash" && hashOnlyVars[inst.Name.Name()] {
		return nil, false
	}
	if idx >= len(g.Args) {
		return nil, false
	}
	return g.Args[idx], true
}
