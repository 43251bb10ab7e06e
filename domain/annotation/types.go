package annotation

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/google/uuid"
)

// ErrNoImage rejects annotation gestures made before a wall image is loaded.
var ErrNoImage = errors.New("no image selected")

// NoImageWarning is the blocking alert shown when ErrNoImage aborts an action.
const NoImageWarning = "请先上传一面墙或者从墙列表中选择一面墙."

// Mode enumerates the interaction modes of the wall canvas.
type Mode int

const (
	ModeBox Mode = iota
	ModeBrush
	ModePoint
)

func (m Mode) String() string {
	switch m {
	case ModeBox:
		return "box"
	case ModeBrush:
		return "brush"
	case ModePoint:
		return "point"
	default:
		return "unknown"
	}
}

// Point is a position in either display or original-image pixels.
type Point struct{ X, Y float64 }

// Rect is an axis-aligned rectangle. Constructed rects satisfy X1<=X2 and Y1<=Y2.
type Rect struct{ X1, Y1, X2, Y2 float64 }

// NormalizeRect spans a and b regardless of drag direction.
func NormalizeRect(a, b Point) Rect {
	return Rect{
		X1: math.Min(a.X, b.X),
		Y1: math.Min(a.Y, b.Y),
		X2: math.Max(a.X, b.X),
		Y2: math.Max(a.Y, b.Y),
	}
}

func (r Rect) Width() float64  { return r.X2 - r.X1 }
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Image rounds the rect to integer pixel bounds.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(math.Round(r.X1)), int(math.Round(r.Y1)), int(math.Round(r.X2)), int(math.Round(r.Y2)))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.X1, r.Y1, r.X2, r.Y2)
}

// Scale maps displayed pixels to original-image pixels per axis.
type Scale struct{ X, Y float64 }

// ScaleFor returns natural/displayed per axis. Degenerate displayed sizes yield identity.
func ScaleFor(natural, displayed image.Point) Scale {
	s := Scale{X: 1, Y: 1}
	if displayed.X > 0 {
		s.X = float64(natural.X) / float64(displayed.X)
	}
	if displayed.Y > 0 {
		s.Y = float64(natural.Y) / float64(displayed.Y)
	}
	return s
}

// ApplyPoint converts a display-space point to original-image space.
func (s Scale) ApplyPoint(p Point) Point { return Point{X: p.X * s.X, Y: p.Y * s.Y} }

// Apply converts a display-space rect to original-image space. Scales are positive so ordering holds.
func (s Scale) Apply(r Rect) Rect {
	return Rect{X1: r.X1 * s.X, Y1: r.Y1 * s.Y, X2: r.X2 * s.X, Y2: r.Y2 * s.Y}
}

// Box is a committed rectangle annotation. Never mutated after creation.
type Box struct {
	ID       uuid.UUID
	Screen   Rect
	Original Rect
}

// ClickPoint is a click annotation. Counted in inference deltas; no gesture creates one yet.
type ClickPoint struct {
	ID       uuid.UUID
	Screen   Point
	Original Point
	Positive bool
}

// TrackCount records cumulative point/box counts at an inference round.
type TrackCount struct{ P, B int }

// SelectedImage describes the loaded wall image.
type SelectedImage struct {
	Name      string
	Path      string
	Size      int64 // bytes of the raw file
	Natural   image.Point
	Displayed image.Point
}

// Scale is the display-to-original ratio of the image.
func (s SelectedImage) Scale() Scale { return ScaleFor(s.Natural, s.Displayed) }

// InferenceEntry formats the history tag for an inference round.
func InferenceEntry(delta TrackCount) string {
	return fmt.Sprintf("inference-%d-%d", delta.P, delta.B)
}

// HistoryBox is the history tag for a committed box.
const HistoryBox = "box"
