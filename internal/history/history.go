// Package history is a linear undo/redo stack over full snapshots.
//
// Every entry stores the state before and after the action it records.
// Undo restores Before at the current index and steps back; redo steps
// forward and restores After at the new index. Undo followed by redo is
// therefore the identity for any single action.
package history

type Entry[S any] struct {
	Kind   string
	Before S
	After  S
}

// Manager is not safe for concurrent use.
type Manager[S any] struct {
	entries []Entry[S]
	index   int
	limit   int
}

// New returns an empty manager. A positive limit bounds the stack; the
// oldest entry is dropped once it is full.
func New[S any](limit int) *Manager[S] {
	if limit < 0 {
		limit = 0
	}
	return &Manager[S]{index: -1, limit: limit}
}

// Record discards any redo-able entries and appends a new action.
func (m *Manager[S]) Record(kind string, before, after S) {
	m.entries = append(m.entries[:m.index+1], Entry[S]{Kind: kind, Before: before, After: after})
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		var zero Entry[S]
		for i := 0; i < drop; i++ {
			m.entries[i] = zero
		}
		m.entries = m.entries[drop:]
	}
	m.index = len(m.entries) - 1
}

func (m *Manager[S]) Undo() (S, bool) {
	if m.index < 0 {
		var zero S
		return zero, false
	}
	s := m.entries[m.index].Before
	m.index--
	return s, true
}

func (m *Manager[S]) Redo() (S, bool) {
	if m.index >= len(m.entries)-1 {
		var zero S
		return zero, false
	}
	m.index++
	return m.entries[m.index].After, true
}

func (m *Manager[S]) CanUndo() bool { return m.index >= 0 }

func (m *Manager[S]) CanRedo() bool { return m.index < len(m.entries)-1 }

func (m *Manager[S]) Len() int { return len(m.entries) }

func (m *Manager[S]) Index() int { return m.index }

// Peek returns the entry undo would revert.
func (m *Manager[S]) Peek() (Entry[S], bool) {
	if m.index < 0 {
		return Entry[S]{}, false
	}
	return m.entries[m.index], true
}

func (m *Manager[S]) Clear() {
	m.entries = nil
	m.index = -1
}
