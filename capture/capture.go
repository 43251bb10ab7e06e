// Package capture grabs the screen as an alternative wall image source.
package capture

import (
	"bytes"
	"image"
	"image/png"
	"time"

	"github.com/pkg/errors"
	"github.com/vova616/screenshot"
)

// Shot is an encoded screen capture ready to be loaded like a wall image file.
type Shot struct {
	Name  string
	Data  []byte
	Image *image.RGBA
}

// Grabber returns the current screen contents.
type Grabber func() (*image.RGBA, error)

// Grab returns a screen capture of the current active monitor.
func Grab() (*image.RGBA, error) {
	return screenshot.CaptureScreen()
}

// Snapshot captures with grab (Grab when nil) and PNG-encodes the result.
// The name embeds the capture time so uploads are distinguishable server-side.
func Snapshot(grab Grabber, now time.Time) (Shot, error) {
	if grab == nil {
		grab = Grab
	}
	img, err := grab()
	if err != nil {
		return Shot{}, errors.Wrap(err, "capture screen")
	}
	if img == nil || img.Bounds().Empty() {
		return Shot{}, errors.New("capture screen: empty frame")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Shot{}, errors.Wrap(err, "encode capture")
	}
	return Shot{
		Name:  "screen-" + now.Format("20060102-150405") + ".png",
		Data:  buf.Bytes(),
		Image: img,
	}, nil
}
