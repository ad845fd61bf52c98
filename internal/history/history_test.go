package history

import "testing"

func TestUndoRedoIdentity(t *testing.T) {
	m := New[string](0)
	if m.CanUndo() || m.CanRedo() {
		t.Fatal("empty manager must not undo or redo")
	}
	if _, ok := m.Undo(); ok {
		t.Fatal("undo on empty must report false")
	}

	m.Record("add", "", "a")
	m.Record("add", "a", "ab")

	s, ok := m.Undo()
	if !ok || s != "a" {
		t.Fatalf("undo: got %q %v", s, ok)
	}
	s, ok = m.Redo()
	if !ok || s != "ab" {
		t.Fatalf("redo: got %q %v", s, ok)
	}
	if m.CanRedo() {
		t.Fatal("redo must be exhausted at tail")
	}
}

func TestNUndosRestoreInitial(t *testing.T) {
	m := New[int](0)
	state := 0
	for i := 1; i <= 5; i++ {
		m.Record("inc", state, i)
		state = i
	}
	for i := 0; i < 5; i++ {
		s, ok := m.Undo()
		if !ok {
			t.Fatalf("undo %d failed", i)
		}
		state = s
	}
	if state != 0 || m.CanUndo() || m.Index() != -1 {
		t.Fatalf("expected initial state, got %d index %d", state, m.Index())
	}
	for i := 0; i < 5; i++ {
		state, _ = m.Redo()
	}
	if state != 5 {
		t.Fatalf("redo chain ended at %d", state)
	}
}

func TestRecordDiscardsRedoBranch(t *testing.T) {
	m := New[string](0)
	m.Record("a", "", "a")
	m.Record("b", "a", "ab")
	m.Undo()
	m.Record("c", "a", "ac")

	if m.Len() != 2 || m.CanRedo() {
		t.Fatalf("branch not discarded: len=%d canRedo=%v", m.Len(), m.CanRedo())
	}
	e, ok := m.Peek()
	if !ok || e.Kind != "c" {
		t.Fatalf("unexpected tail: %#v", e)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	m := New[int](3)
	for i := 1; i <= 5; i++ {
		m.Record("inc", i-1, i)
	}
	if m.Len() != 3 || m.Index() != 2 {
		t.Fatalf("unexpected len=%d index=%d", m.Len(), m.Index())
	}
	var last int
	for m.CanUndo() {
		last, _ = m.Undo()
	}
	if last != 2 {
		t.Fatalf("oldest retained before-state should be 2, got %d", last)
	}
	m.Clear()
	if m.Len() != 0 || m.CanUndo() {
		t.Fatal("clear did not reset")
	}
}
