// Package history implements the bounded linear undo/redo log.
//
// Entries are stored serialized, so a stored snapshot can never alias live
// state, and every restore decodes a fresh copy.
package history

import (
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// DefaultLimit is the number of entries retained before the oldest is evicted.
const DefaultLimit = 20

// State reports which directions are currently available.
type State struct {
	CanUndo bool
	CanRedo bool
}

// Log is a bounded sequence of snapshots with a cursor. It is not safe for
// concurrent use.
type Log struct {
	entries [][]byte
	cursor  int
	limit   int
}

// New creates an empty log holding at most limit entries. A non-positive
// limit selects DefaultLimit.
func New(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{cursor: -1, limit: limit}
}

// Push records a snapshot. Entries after the cursor are discarded first.
//
// When the log overflows, the oldest entry is evicted and the cursor does not
// advance, so it stays on the last index rather than moving past the window.
func (l *Log) Push(snap document.Snapshot) (State, error) {
	data, err := snap.Marshal()
	if err != nil {
		return l.State(), err
	}

	if l.cursor < len(l.entries)-1 {
		l.entries = l.entries[:l.cursor+1]
	}
	l.entries = append(l.entries, data)

	if len(l.entries) > l.limit {
		l.entries = l.entries[1:]
	} else {
		l.cursor++
	}

	return l.State(), nil
}

// Undo moves the cursor back and returns the snapshot there.
func (l *Log) Undo() (document.Snapshot, error) {
	if !l.CanUndo() {
		return document.Snapshot{}, sverrors.NewHistoryError("undo")
	}
	l.cursor--
	return document.Unmarshal(l.entries[l.cursor])
}

// Redo moves the cursor forward and returns the snapshot there.
func (l *Log) Redo() (document.Snapshot, error) {
	if !l.CanRedo() {
		return document.Snapshot{}, sverrors.NewHistoryError("redo")
	}
	l.cursor++
	return document.Unmarshal(l.entries[l.cursor])
}

// Current returns the snapshot under the cursor.
func (l *Log) Current() (document.Snapshot, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries) {
		return document.Snapshot{}, false
	}
	snap, err := document.Unmarshal(l.entries[l.cursor])
	if err != nil {
		return document.Snapshot{}, false
	}
	return snap, true
}

func (l *Log) CanUndo() bool { return l.cursor > 0 }

func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// State returns both availability flags.
func (l *Log) State() State {
	return State{CanUndo: l.CanUndo(), CanRedo: l.CanRedo()}
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return len(l.entries) }

// Cursor returns the current index, or -1 when the log is empty.
func (l *Log) Cursor() int { return l.cursor }

// Reset drops every entry.
func (l *Log) Reset() {
	l.entries = nil
	l.cursor = -1
}
