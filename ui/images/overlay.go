package images

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	// DragColor outlines the in-progress box.
	DragColor = color.RGBA{R: 255, A: 255}
	// BoxColor outlines committed boxes.
	BoxColor = color.RGBA{R: 22, G: 154, B: 224, A: 255}
	// PointColor fills click points.
	PointColor = color.RGBA{R: 16, G: 185, B: 129, A: 255}
)

// OutlineWidth is the border thickness of box outlines in display pixels.
const OutlineWidth = 3

// Shape is an overlay primitive drawn on top of the wall image.
type Shape struct {
	Rect   image.Rectangle
	Color  color.Color
	Filled bool
}

// Placeholder returns the translucent dark frame shown before any image loads.
func Placeholder(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{A: 128}), image.Point{}, draw.Src)
	return img
}

// DrawOutline strokes r with the given width, clipped to dst. The border grows inward.
func DrawOutline(dst draw.Image, r image.Rectangle, width int, c color.Color) {
	r = r.Canon()
	if r.Empty() {
		// A click without drag still shows a marker.
		r = image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Min.Y+1)
	}
	if width < 1 {
		width = 1
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, min(r.Min.Y+width, r.Max.Y)),
		image.Rect(r.Min.X, max(r.Max.Y-width, r.Min.Y), r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, min(r.Min.X+width, r.Max.X), r.Max.Y),
		image.Rect(max(r.Max.X-width, r.Min.X), r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// Compose renders base, the brush mask and overlay shapes into a frame of
// base's size taken from the frame pool. The mask is blended over the image;
// shapes are drawn last.
func Compose(base image.Image, mask image.Image, shapes []Shape) *image.RGBA {
	b := base.Bounds()
	out := AcquireFrame(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), base, b.Min, draw.Src)
	if mask != nil {
		draw.Draw(out, out.Bounds(), mask, mask.Bounds().Min, draw.Over)
	}
	for _, s := range shapes {
		if s.Filled {
			draw.Draw(out, s.Rect.Canon().Intersect(out.Bounds()), image.NewUniform(s.Color), image.Point{}, draw.Src)
			continue
		}
		DrawOutline(out, s.Rect, OutlineWidth, s.Color)
	}
	return out
}
