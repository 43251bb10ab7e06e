package model

import (
	"github.com/google/uuid"
)

// Display is the visual style of an overlay marker.
type Display int

const (
	DisplayNone Display = iota
	DisplayOutline
	DisplayFilled
)

// MarkerKind separates box markers from point markers.
type MarkerKind int

const (
	MarkerBox MarkerKind = iota
	MarkerPoint
)

// Marker is an overlay element drawn over the wall image.
type Marker struct {
	ID      uuid.UUID
	Kind    MarkerKind
	Display Display
	// X1..Y2 are display-space bounds.
	X1, Y1, X2, Y2 float64
}

// OverlayModel owns the overlay markers and their hide/restore bookkeeping.
// No synchronization needed: updates occur on the UI thread.
type OverlayModel struct {
	markers []Marker
	saved   map[uuid.UUID]Display // pre-hide display per marker
}

func NewOverlayModel() *OverlayModel {
	return &OverlayModel{saved: make(map[uuid.UUID]Display)}
}

// Add appends a marker.
func (m *OverlayModel) Add(mk Marker) { m.markers = append(m.markers, mk) }

// Clear removes every marker and forgets saved styles.
func (m *OverlayModel) Clear() {
	m.markers = nil
	clear(m.saved)
}

// Markers returns a copy of the markers in insertion order.
func (m *OverlayModel) Markers() []Marker { return append([]Marker(nil), m.markers...) }

// Visible returns markers whose display is not none.
func (m *OverlayModel) Visible() []Marker {
	out := make([]Marker, 0, len(m.markers))
	for _, mk := range m.markers {
		if mk.Display != DisplayNone {
			out = append(out, mk)
		}
	}
	return out
}

// HideAll hides every marker, remembering each one's current style. A marker
// already hidden by a previous HideAll keeps its first remembered style.
func (m *OverlayModel) HideAll() {
	for i := range m.markers {
		mk := &m.markers[i]
		if _, ok := m.saved[mk.ID]; ok {
			continue
		}
		m.saved[mk.ID] = mk.Display
		mk.Display = DisplayNone
	}
}

// RestoreAll puts back each remembered style individually and forgets it.
// Markers without a remembered style are left as they are.
func (m *OverlayModel) RestoreAll() {
	for i := range m.markers {
		mk := &m.markers[i]
		if d, ok := m.saved[mk.ID]; ok {
			mk.Display = d
			delete(m.saved, mk.ID)
		}
	}
}
