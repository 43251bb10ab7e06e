package presenter

import (
	"image"

	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/domain/brush"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/model"
)

// CanvasView shows the composited wall frame. The view's border makes up the
// container inset around the frame.
type CanvasView interface {
	ShowFrame(img image.Image)
}

// DragPreview reports the in-progress box, if any.
type DragPreview interface {
	Preview() (annotation.Rect, bool)
}

// placeholderSize is the canvas size before any wall is loaded.
var placeholderSize = image.Pt(640, 400)

// CanvasPresenter composes the wall image, brush mask and overlay markers
// into the frame shown by the view.
type CanvasPresenter struct {
	view    CanvasView
	overlay *model.OverlayModel
	mask    *brush.MaskCanvas
	drag    DragPreview

	source  image.Image // latest full-resolution image
	display image.Point
	base    *image.RGBA // source scaled to display
}

func NewCanvasPresenter(view CanvasView, overlay *model.OverlayModel, mask *brush.MaskCanvas, drag DragPreview) *CanvasPresenter {
	return &CanvasPresenter{view: view, overlay: overlay, mask: mask, drag: drag}
}

// Layout sizes the canvas for a newly loaded image and shows it.
// The brush mask follows the new display size, keeping painted pixels.
func (p *CanvasPresenter) Layout(img image.Image, l annotation.Layout) {
	if p == nil {
		return
	}
	p.display = l.Preview
	if p.mask != nil {
		p.mask.Resize(l.Preview.X, l.Preview.Y)
	}
	p.SetSource(img)
}

// SetSource replaces the displayed image, keeping the current display size.
func (p *CanvasPresenter) SetSource(img image.Image) {
	if p == nil {
		return
	}
	p.source = img
	p.base = nil
	if img != nil && p.display.X > 0 && p.display.Y > 0 {
		p.base = images.ScaleTo(img, p.display.X, p.display.Y)
	}
	p.Redraw()
}

// Reset returns to the placeholder frame.
func (p *CanvasPresenter) Reset() {
	if p == nil {
		return
	}
	p.source, p.base = nil, nil
	p.display = image.Point{}
	p.Redraw()
}

// Redraw composes and pushes a fresh frame to the view. Views must not retain
// the frame past ShowFrame.
func (p *CanvasPresenter) Redraw() {
	if p == nil || p.view == nil {
		return
	}
	frame := p.Frame()
	p.view.ShowFrame(frame)
	images.RecycleFrame(frame)
}

// Frame composes the current frame without showing it.
func (p *CanvasPresenter) Frame() *image.RGBA {
	var base image.Image = p.base
	if p.base == nil {
		base = images.Placeholder(placeholderSize.X, placeholderSize.Y)
	}
	var shapes []images.Shape
	if p.overlay != nil {
		for _, mk := range p.overlay.Visible() {
			r := annotation.Rect{X1: mk.X1, Y1: mk.Y1, X2: mk.X2, Y2: mk.Y2}.Image()
			switch mk.Kind {
			case model.MarkerPoint:
				shapes = append(shapes, images.Shape{Rect: r.Inset(-3), Color: images.PointColor, Filled: true})
			default:
				shapes = append(shapes, images.Shape{Rect: r, Color: images.BoxColor, Filled: mk.Display == model.DisplayFilled})
			}
		}
	}
	if p.drag != nil {
		if r, ok := p.drag.Preview(); ok {
			shapes = append(shapes, images.Shape{Rect: r.Image(), Color: images.DragColor})
		}
	}
	var mask image.Image
	if p.mask != nil && p.base != nil {
		mask = p.mask.Image()
	}
	return images.Compose(base, mask, shapes)
}
