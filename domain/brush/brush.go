package brush

import (
	"image/color"
	"log/slog"

	"github.com/soocke/wall-annotator/domain/annotation"
)

var (
	// DrawColor paints mask regions to keep.
	DrawColor = color.NRGBA{R: 255, G: 0, B: 0, A: 51}
	// EraseColor paints mask regions to remove.
	EraseColor = color.NRGBA{R: 0, G: 0, B: 255, A: 51}
)

// DefaultSize is the initial stroke width in display pixels.
const DefaultSize = 8

// LineStyle mirrors the cap and join styles of a stroke.
type LineStyle string

const (
	LineRound  LineStyle = "round"
	LineButt   LineStyle = "butt"
	LineSquare LineStyle = "square"
)

// Stroke describes how the mask canvas renders brush input.
type Stroke struct {
	Color color.NRGBA
	Width int
	Cap   LineStyle
	Join  LineStyle
}

// Controller arms the mask overlay for freehand input.
//
// Stroke capture is not implemented: the start/continue/stop handlers only
// honour the disabled early return and record nothing.
type Controller struct {
	logger  *slog.Logger
	enabled bool
	erase   bool
	stroke  Stroke
	drawing bool
	last    annotation.Point
}

// NewController returns a disabled brush controller.
func NewController(logger *slog.Logger) *Controller {
	return &Controller{logger: logger, stroke: Stroke{Color: DrawColor, Width: DefaultSize, Cap: LineRound, Join: LineRound}}
}

// Enable arms the brush with the shared size control value. Pointer input is
// captured by the mask overlay while enabled.
func (c *Controller) Enable(size int) {
	if size <= 0 {
		size = DefaultSize
	}
	c.enabled = true
	col := DrawColor
	if c.erase {
		col = EraseColor
	}
	c.stroke = Stroke{Color: col, Width: size, Cap: LineRound, Join: LineRound}
	if c.logger != nil {
		c.logger.Debug("brush enabled", "size", size, "erase", c.erase)
	}
}

// Disable lets pointer input pass through to the image container.
func (c *Controller) Disable() {
	c.enabled = false
	c.drawing = false
}

// SetErase selects the erase colour for subsequent Enable calls and the current stroke.
func (c *Controller) SetErase(erase bool) {
	c.erase = erase
	if erase {
		c.stroke.Color = EraseColor
	} else {
		c.stroke.Color = DrawColor
	}
}

// SetSize updates the stroke width, e.g. when the size control changes.
func (c *Controller) SetSize(size int) {
	if size > 0 {
		c.stroke.Width = size
	}
}

func (c *Controller) Enabled() bool         { return c.enabled }
func (c *Controller) Stroke() Stroke        { return c.stroke }
func (c *Controller) CapturesPointer() bool { return c.enabled }

// StartStroke begins a stroke. No stroke data is persisted.
func (c *Controller) StartStroke(p annotation.Point) {
	if !c.enabled {
		return
	}
}

// ContinueStroke tracks the pointer; nothing is painted.
func (c *Controller) ContinueStroke(p annotation.Point) {
	c.last = p
	if !c.drawing {
		return
	}
}

// StopStroke ends a stroke. No stroke data is persisted.
func (c *Controller) StopStroke() {
	if !c.enabled {
		return
	}
}

// LastPointer returns the most recent pointer position seen by ContinueStroke.
func (c *Controller) LastPointer() annotation.Point { return c.last }
