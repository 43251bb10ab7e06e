package annotation

import (
	"image"

	"github.com/google/uuid"

	"github.com/soocke/wall-annotator/domain/history"
)

// Session holds the annotation state of the currently loaded wall image.
// It is owned by the UI controller and mutated only from the UI thread.
type Session struct {
	image   *SelectedImage
	mode    Mode
	boxes   []Box
	points  []ClickPoint
	history *history.Deque[string]
	tracks  *history.Deque[TrackCount]
}

// NewSession returns an empty session in box mode. capacity bounds both history buffers.
func NewSession(capacity int) *Session {
	return &Session{
		mode:    ModeBox,
		history: history.NewDeque[string](capacity),
		tracks:  history.NewDeque[TrackCount](capacity),
	}
}

// Reset drops every annotation and both history buffers. Called when a new image loads.
func (s *Session) Reset() {
	s.image = nil
	s.boxes = nil
	s.points = nil
	s.history.Clear()
	s.tracks.Clear()
}

// SetImage installs the loaded image description.
func (s *Session) SetImage(img SelectedImage) {
	cp := img
	s.image = &cp
}

// Image returns the loaded image, or false when none is selected.
func (s *Session) Image() (SelectedImage, bool) {
	if s.image == nil {
		return SelectedImage{}, false
	}
	return *s.image, true
}

// HasImage reports whether a wall image is loaded.
func (s *Session) HasImage() bool { return s.image != nil }

// SetDisplayed updates the on-screen size used for coordinate conversion.
func (s *Session) SetDisplayed(size image.Point) {
	if s.image != nil {
		s.image.Displayed = size
	}
}

func (s *Session) Mode() Mode           { return s.mode }
func (s *Session) SetMode(m Mode)       { s.mode = m }
func (s *Session) Boxes() []Box         { return append([]Box(nil), s.boxes...) }
func (s *Session) BoxCount() int        { return len(s.boxes) }
func (s *Session) PointCount() int      { return len(s.points) }

// AddBox commits a display-space rect as a box and records it in the history.
func (s *Session) AddBox(screen Rect) (Box, error) {
	if s.image == nil {
		return Box{}, ErrNoImage
	}
	b := Box{
		ID:       uuid.New(),
		Screen:   screen,
		Original: s.image.Scale().Apply(screen),
	}
	s.boxes = append(s.boxes, b)
	s.history.PushRight(HistoryBox)
	return b, nil
}

// AddPoint records a click point.
func (s *Session) AddPoint(screen Point, positive bool) (ClickPoint, error) {
	if s.image == nil {
		return ClickPoint{}, ErrNoImage
	}
	p := ClickPoint{
		ID:       uuid.New(),
		Screen:   screen,
		Original: s.image.Scale().ApplyPoint(screen),
		Positive: positive,
	}
	s.points = append(s.points, p)
	return p, nil
}

// RecordInference closes an inference round. It returns the points/boxes added
// since the previous round and the history entry describing them.
func (s *Session) RecordInference() (TrackCount, string) {
	prev, ok := s.tracks.PopRight()
	if !ok {
		prev = TrackCount{}
	}
	curr := TrackCount{P: len(s.points), B: len(s.boxes)}
	delta := TrackCount{P: curr.P - prev.P, B: curr.B - prev.B}
	s.tracks.PushRight(curr)
	entry := InferenceEntry(delta)
	s.history.PushRight(entry)
	return delta, entry
}

// HistoryEntries returns the action history oldest first.
func (s *Session) HistoryEntries() []string { return s.history.Items() }

// HistoryLen reports the number of recorded actions.
func (s *Session) HistoryLen() int { return s.history.Len() }
