package view

import (
	"image"

	"github.com/soocke/wall-annotator/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandler receives pointer events in display coordinates of the wall image.
type PointerHandler interface {
	Press(x, y float64)
	Motion(x, y float64)
	Release(x, y float64)
	Leave()
}

// WallCanvas shows the composited wall frame in a label and forwards pointer
// input. The label carries no border so event coordinates match image pixels.
// The frame shrinks to the label, so its border alone makes up the container
// inset around the image.
type WallCanvas struct {
	frame *FrameWidget
	label *LabelWidget
	photo *Img // current Tk photo, deleted when replaced
}

// frameBorder is half of the preview inset applied around the image.
const frameBorder = 4

// NewWallCanvas creates the canvas at row of the root grid, spanning span columns.
func NewWallCanvas(row, span int, placeholder image.Image) *WallCanvas {
	c := &WallCanvas{}
	c.frame = Frame(Borderwidth(frameBorder), Relief("sunken"))
	Grid(c.frame, Row(row), Column(0), Columnspan(span), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	c.photo = NewPhoto(Data(images.EncodePNG(placeholder)))
	c.label = Label(Image(c.photo), Borderwidth(0), Padx(0), Pady(0))
	Pack(c.label, In(c.frame))
	return c
}

// Bind routes primary-button pointer events on the image to h.
func (c *WallCanvas) Bind(h PointerHandler) {
	if c == nil || c.label == nil || h == nil {
		return
	}
	Bind(c.label, "<ButtonPress-1>", Command(func(e *Event) { h.Press(float64(e.X), float64(e.Y)) }))
	Bind(c.label, "<B1-Motion>", Command(func(e *Event) { h.Motion(float64(e.X), float64(e.Y)) }))
	Bind(c.label, "<ButtonRelease-1>", Command(func(e *Event) { h.Release(float64(e.X), float64(e.Y)) }))
	Bind(c.label, "<Leave>", Command(func() { h.Leave() }))
}

// ShowFrame replaces the displayed photo.
func (c *WallCanvas) ShowFrame(img image.Image) {
	if c == nil || c.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	if c.photo != nil {
		c.photo.Delete()
	}
	c.photo = NewPhoto(Data(pngBytes))
	c.label.Configure(Image(c.photo))
}
