// Package history provides undo/redo over whole-model snapshots.
//
// Every committed edit pushes a deep copy of the model. Undo and redo walk a
// cursor over the stored entries and hand back fresh copies, so the live
// model and the stored entries never share mutable state.
package history

import (
	"sync"

	"github.com/bethropolis/sprig/internal/logger"
)

const DefaultMaxHistory = 100

// Snapshotter is implemented by model types that can deep-copy themselves.
type Snapshotter[S any] interface {
	Clone() S
}

// Manager is a bounded, cursor-addressed list of snapshots.
type Manager[S Snapshotter[S]] struct {
	entries    []S
	cursor     int // Index of the entry matching the live model, -1 when empty
	maxHistory int
	mutex      sync.Mutex
}

// NewManager creates a history manager holding at most maxHistory entries.
func NewManager[S Snapshotter[S]](maxHistory int) *Manager[S] {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager[S]{
		entries:    make([]S, 0, maxHistory),
		cursor:     -1,
		maxHistory: maxHistory,
	}
}

// Push records a new state after the cursor, dropping any redo entries.
func (m *Manager[S]) Push(s S) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// A new edit invalidates everything that was undone
	if m.cursor+1 < len(m.entries) {
		clear(m.entries[m.cursor+1:])
		m.entries = m.entries[:m.cursor+1]
	}

	m.entries = append(m.entries, s.Clone())

	if len(m.entries) > m.maxHistory {
		drop := len(m.entries) - m.maxHistory
		// Shift in place so the backing array does not grow without bound
		n := copy(m.entries, m.entries[drop:])
		clear(m.entries[n:])
		m.entries = m.entries[:n]
	}

	m.cursor = len(m.entries) - 1
	logger.DebugTagf("history", "History: pushed snapshot. Cursor: %d, Count: %d", m.cursor, len(m.entries))
}

// Undo steps back one entry and returns a copy of it. ok is false when the
// cursor already sits on the oldest entry.
func (m *Manager[S]) Undo() (s S, ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cursor <= 0 {
		logger.DebugTagf("history", "History: nothing to undo.")
		return s, false
	}
	m.cursor--
	logger.DebugTagf("history", "History: undo to %d of %d", m.cursor, len(m.entries))
	return m.entries[m.cursor].Clone(), true
}

// Redo steps forward one entry and returns a copy of it. ok is false when the
// cursor already sits on the newest entry.
func (m *Manager[S]) Redo() (s S, ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cursor < 0 || m.cursor >= len(m.entries)-1 {
		logger.DebugTagf("history", "History: nothing to redo. cursor=%d, count=%d", m.cursor, len(m.entries))
		return s, false
	}
	m.cursor++
	logger.DebugTagf("history", "History: redo to %d of %d", m.cursor, len(m.entries))
	return m.entries[m.cursor].Clone(), true
}

// Current returns a copy of the entry under the cursor.
func (m *Manager[S]) Current() (s S, ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.cursor < 0 {
		return s, false
	}
	return m.entries[m.cursor].Clone(), true
}

// Clear empties the history. Call this before loading a new document.
func (m *Manager[S]) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	clear(m.entries)
	m.entries = m.entries[:0]
	m.cursor = -1
	logger.DebugTagf("history", "History: cleared.")
}

// CanUndo returns true if there is an older entry to go back to.
func (m *Manager[S]) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.cursor > 0
}

// CanRedo returns true if there is a newer entry to go forward to.
func (m *Manager[S]) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.cursor >= 0 && m.cursor < len(m.entries)-1
}

// Len returns the number of stored entries.
func (m *Manager[S]) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.entries)
}

// Capacity returns the maximum number of entries kept.
func (m *Manager[S]) Capacity() int {
	return m.maxHistory
}
