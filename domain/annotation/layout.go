package annotation

import "image"

const (
	// DefaultViewportFraction is the share of the viewport the wall image may occupy.
	DefaultViewportFraction = 0.8
	// verticalReserve keeps room below the image for the status line.
	verticalReserve = 10
	// frameInset is the border width around the preview inside its container.
	frameInset = 8
)

// Layout is the computed on-screen geometry of a loaded image.
type Layout struct {
	Container image.Point // frame holding the preview
	Preview   image.Point // drawn image, also the mask canvas size
}

// FitDisplay sizes an image of natural dimensions to fit within fraction of the
// viewport while preserving aspect ratio. Height binds first; width clamps it.
func FitDisplay(natural, viewport image.Point, fraction float64) Layout {
	if natural.X <= 0 || natural.Y <= 0 || viewport.X <= 0 || viewport.Y <= 0 {
		return Layout{}
	}
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultViewportFraction
	}
	aspect := float64(natural.X) / float64(natural.Y)
	maxH := float64(viewport.Y)*fraction - verticalReserve
	maxW := float64(viewport.X) * fraction

	h := maxH
	w := h * aspect
	if w > maxW {
		w = maxW
		h = w / aspect
	}
	container := image.Pt(int(w), int(h))
	preview := image.Pt(container.X-frameInset, container.Y-frameInset)
	if preview.X < 1 {
		preview.X = 1
	}
	if preview.Y < 1 {
		preview.Y = 1
	}
	return Layout{Container: container, Preview: preview}
}
