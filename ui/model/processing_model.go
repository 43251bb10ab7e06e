package model

import (
	"sync/atomic"
)

// ProcessingModel tracks whether an inference round is in flight. The zero value is idle and usable.
// Backed by atomic.Bool; the debug runtime logger reads it off the UI thread.
type ProcessingModel struct{ busy atomic.Bool }

// Busy reports whether a round is in flight.
func (m *ProcessingModel) Busy() bool {
	if m == nil {
		return false
	}
	return m.busy.Load()
}

// TryBegin marks the model busy. It returns false when a round is already in flight.
func (m *ProcessingModel) TryBegin() bool {
	if m == nil {
		return false
	}
	return m.busy.CompareAndSwap(false, true)
}

// End clears the busy flag.
func (m *ProcessingModel) End() {
	if m == nil {
		return
	}
	m.busy.Store(false)
}
