package brush

import (
	"image"

	"github.com/soocke/wall-annotator/domain/annotation"
)

// MaskCanvas is the raster overlay the brush paints into. It is sized to the
// displayed image and follows it across resizes.
type MaskCanvas struct {
	img *image.NRGBA
}

// NewMaskCanvas returns a transparent canvas of size w x h (minimum 1x1).
func NewMaskCanvas(w, h int) *MaskCanvas {
	return &MaskCanvas{img: image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))}
}

// Image exposes the backing raster.
func (m *MaskCanvas) Image() *image.NRGBA { return m.img }

// Size returns the canvas dimensions.
func (m *MaskCanvas) Size() image.Point { return m.img.Bounds().Size() }

// Resize changes the canvas dimensions, snapshotting the painted content and
// restoring it at the origin. Pixels beyond the new bounds are clipped.
func (m *MaskCanvas) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if m.img.Bounds().Dx() == w && m.img.Bounds().Dy() == h {
		return
	}
	snapshot := m.img
	next := image.NewNRGBA(image.Rect(0, 0, w, h))
	// Raw row copy keeps non-premultiplied values exact.
	rowBytes := min(w, snapshot.Rect.Dx()) * 4
	for y := 0; y < min(h, snapshot.Rect.Dy()); y++ {
		copy(next.Pix[y*next.Stride:y*next.Stride+rowBytes], snapshot.Pix[y*snapshot.Stride:])
	}
	m.img = next
}

// Clear makes every pixel transparent.
func (m *MaskCanvas) Clear() {
	clear(m.img.Pix)
}

// Empty reports whether nothing has been painted.
func (m *MaskCanvas) Empty() bool {
	for i := 3; i < len(m.img.Pix); i += 4 {
		if m.img.Pix[i] != 0 {
			return false
		}
	}
	return true
}

// CanvasPos maps a pointer position on a widget of the given on-screen size to
// canvas pixels, accounting for any difference between widget and raster size.
func (m *MaskCanvas) CanvasPos(p annotation.Point, onScreen image.Point) annotation.Point {
	return annotation.ScaleFor(m.Size(), onScreen).ApplyPoint(p)
}

// OriginalPos maps a canvas pixel to original-image pixels.
func (m *MaskCanvas) OriginalPos(p annotation.Point, natural image.Point) annotation.Point {
	return annotation.ScaleFor(natural, m.Size()).ApplyPoint(p)
}
