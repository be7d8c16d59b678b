// Package scope models the lexical environment of the program under
// analysis: a stack of frames for classes, modules, methods and blocks, with
// per-frame tables mapping names to graph vertices.
package scope

import (
	"strings"

	"github.com/dak2/methodray/graph"
)

// Kind tags what construct a frame belongs to.
type Kind int

const (
	KindTopLevel Kind = iota
	KindClass
	KindModule
	KindMethod
	KindBlock
)

// FrameID indexes the manager's frame arena.
type FrameID int

// Frame is one lexical scope record. Name is set for class/module frames
// (verbatim, possibly containing "::" for inline-qualified definitions) and
// for method frames (the method name). Receiver remembers the enclosing
// class or module of a method frame, for self typing.
type Frame struct {
	ID       FrameID
	Kind     Kind
	Name     string
	Parent   FrameID // -1 for the top-level frame
	Receiver string

	Locals       map[string]graph.VertexID
	InstanceVars map[string]graph.VertexID
	ClassVars    map[string]graph.VertexID
}

func newFrame(id FrameID, kind Kind, name string, parent FrameID) *Frame {
	return &Frame{
		ID:           id,
		Kind:         kind,
		Name:         name,
		Parent:       parent,
		Locals:       make(map[string]graph.VertexID),
		InstanceVars: make(map[string]graph.VertexID),
		ClassVars:    make(map[string]graph.VertexID),
	}
}

// Manager owns the frame arena and the current-frame cursor. Frames are
// logically torn down on Exit but their storage persists for post-hoc
// inspection.
type Manager struct {
	frames  []*Frame
	current FrameID
}

func NewManager() *Manager {
	m := &Manager{}
	m.frames = append(m.frames, newFrame(0, KindTopLevel, "", -1))
	m.current = 0
	return m
}

// Current returns the frame the producer is installing into.
func (m *Manager) Current() *Frame { return m.frames[m.current] }

// Frame looks up a frame by ID.
func (m *Manager) Frame(id FrameID) (*Frame, bool) {
	if id < 0 || int(id) >= len(m.frames) {
		return nil, false
	}
	return m.frames[id], true
}

func (m *Manager) push(kind Kind, name string) *Frame {
	f := newFrame(FrameID(len(m.frames)), kind, name, m.current)
	m.frames = append(m.frames, f)
	m.current = f.ID
	return f
}

// EnterClass pushes a class frame tagged with the (possibly qualified) name.
func (m *Manager) EnterClass(name string) *Frame { return m.push(KindClass, name) }

// EnterModule pushes a module frame.
func (m *Manager) EnterModule(name string) *Frame { return m.push(KindModule, name) }

// EnterMethod pushes a method frame remembering its enclosing receiver
// class or module.
func (m *Manager) EnterMethod(name string) *Frame {
	receiver := ""
	if encl, ok := m.NearestClassOrModule(); ok {
		receiver = encl.Name
	}
	f := m.push(KindMethod, name)
	f.Receiver = receiver
	return f
}

// EnterBlock pushes a block frame.
func (m *Manager) EnterBlock() *Frame { return m.push(KindBlock, "") }

// Exit pops to the parent frame. Exiting the top level is a no-op.
func (m *Manager) Exit() {
	if parent := m.Current().Parent; parent >= 0 {
		m.current = parent
	}
}

// SetLocal binds a local in the current frame.
func (m *Manager) SetLocal(name string, v graph.VertexID) {
	m.Current().Locals[name] = v
}

// LookupLocal climbs the parent chain; the first hit wins.
func (m *Manager) LookupLocal(name string) (graph.VertexID, bool) {
	for f := m.Current(); ; {
		if v, ok := f.Locals[name]; ok {
			return v, true
		}
		if f.Parent < 0 {
			return 0, false
		}
		f = m.frames[f.Parent]
	}
}

// NearestClassOrModule climbs to the closest enclosing class or module
// frame.
func (m *Manager) NearestClassOrModule() (*Frame, bool) {
	for f := m.Current(); ; {
		if f.Kind == KindClass || f.Kind == KindModule {
			return f, true
		}
		if f.Parent < 0 {
			return nil, false
		}
		f = m.frames[f.Parent]
	}
}

// SetInstanceVar stores an instance variable in the nearest enclosing
// class/module frame. Outside any class or module the write is dropped.
func (m *Manager) SetInstanceVar(name string, v graph.VertexID) {
	if f, ok := m.NearestClassOrModule(); ok {
		f.InstanceVars[name] = v
	}
}

// LookupInstanceVar returns the entry of the nearest enclosing class/module
// frame only; instance variables do not leak across receiver boundaries.
func (m *Manager) LookupInstanceVar(name string) (graph.VertexID, bool) {
	f, ok := m.NearestClassOrModule()
	if !ok {
		return 0, false
	}
	v, ok := f.InstanceVars[name]
	return v, ok
}

// SetClassVar stores a class variable in the nearest enclosing class/module
// frame.
func (m *Manager) SetClassVar(name string, v graph.VertexID) {
	if f, ok := m.NearestClassOrModule(); ok {
		f.ClassVars[name] = v
	}
}

// LookupClassVar returns the class-variable entry of the nearest enclosing
// class/module frame.
func (m *Manager) LookupClassVar(name string) (graph.VertexID, bool) {
	f, ok := m.NearestClassOrModule()
	if !ok {
		return 0, false
	}
	v, ok := f.ClassVars[name]
	return v, ok
}

// QualifiedSelf joins every enclosing class/module segment, outermost first,
// into the full path of self. A frame name that already contains "::" (from
// an inline-qualified definition) is kept verbatim, so
// `module Api; class V1::User` yields "Api::V1::User". Returns "" at top
// level.
func (m *Manager) QualifiedSelf() string {
	var segments []string
	for f := m.Current(); ; {
		if f.Kind == KindClass || f.Kind == KindModule {
			segments = append(segments, f.Name)
		}
		if f.Parent < 0 {
			break
		}
		f = m.frames[f.Parent]
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "::")
}
