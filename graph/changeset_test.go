package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeSetAdd(t *testing.T) {
	cs := NewChangeSet()
	cs.AddEdge(1, 2)
	cs.AddEdge(2, 3)

	updates := cs.Reinstall()

	assert.Len(t, updates, 2)
	assert.Contains(t, updates, EdgeUpdate{Src: 1, Dst: 2})
	assert.Contains(t, updates, EdgeUpdate{Src: 2, Dst: 3})
}

func TestChangeSetDedup(t *testing.T) {
	cs := NewChangeSet()
	cs.AddEdge(1, 2)
	cs.AddEdge(1, 2)

	assert.Len(t, cs.Reinstall(), 1)
}

func TestChangeSetBaselineRemove(t *testing.T) {
	cs := NewChangeSet()
	cs.AddEdge(1, 2)
	cs.AddEdge(2, 3)
	cs.Reinstall()

	// second round keeps only (1,2); (2,3) shows up as a remove
	cs.AddEdge(1, 2)
	updates := cs.Reinstall()

	assert.Len(t, updates, 1)
	assert.Contains(t, updates, EdgeUpdate{Src: 2, Dst: 3, Remove: true})
}

func TestChangeSetReschedule(t *testing.T) {
	cs := NewChangeSet()
	cs.Reschedule(7)
	cs.Reschedule(9)

	assert.Equal(t, []BoxID{7, 9}, cs.TakeReschedules())
	assert.Empty(t, cs.TakeReschedules())
}
