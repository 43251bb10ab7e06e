package presenter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/wall-annotator/capture"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/model"
)

// Uploader sends the raw wall image to the server.
type Uploader interface {
	UploadImage(ctx context.Context, name string, r io.Reader) (string, error)
}

// ImageView is the part of the root view the loader updates.
type ImageView interface {
	ViewportSize() image.Point
	SetImageInfo(name, detail string)
	SetRecent(paths []string)
}

// BoxModeSelector switches to box mode once the server accepted an upload.
type BoxModeSelector interface{ SelectBox() }

// ImagePresenter loads wall images from disk, the recent list or a screen
// capture. Decoding and upload run concurrently; box mode is selected once
// both have finished successfully.
type ImagePresenter struct {
	session  *annotation.Session
	drawer   *annotation.BoxDrawer
	overlay  *model.OverlayModel
	recent   *model.RecentImages
	canvas   *CanvasPresenter
	uploader Uploader
	modes    BoxModeSelector
	view     ImageView
	status   *StatusPresenter
	logger   *slog.Logger
	run      async
	timeout  time.Duration
	fraction float64

	readFile func(string) ([]byte, error)
	grab     capture.Grabber
	now      func() time.Time

	gen  uint64
	load *pendingLoad
}

// pendingLoad tracks the two halves of an image load.
type pendingLoad struct {
	gen      uint64
	decoded  bool
	uploaded bool
}

func NewImagePresenter(session *annotation.Session, drawer *annotation.BoxDrawer, overlay *model.OverlayModel, recent *model.RecentImages, canvas *CanvasPresenter, uploader Uploader, modes BoxModeSelector, view ImageView, status *StatusPresenter, post Poster, fraction float64, timeout time.Duration, logger *slog.Logger) *ImagePresenter {
	return &ImagePresenter{
		session:  session,
		drawer:   drawer,
		overlay:  overlay,
		recent:   recent,
		canvas:   canvas,
		uploader: uploader,
		modes:    modes,
		view:     view,
		status:   status,
		logger:   discardIfNil(logger),
		run:      newAsync(post),
		timeout:  timeout,
		fraction: fraction,
		readFile: os.ReadFile,
		grab:     capture.Grab,
		now:      time.Now,
	}
}

// LoadFile reads path and loads it as the current wall.
func (p *ImagePresenter) LoadFile(path string) {
	if path == "" {
		return
	}
	var (
		data []byte
		err  error
	)
	p.run.do(func() {
		data, err = p.readFile(path)
	}, func() {
		if err != nil {
			p.logger.Error("read image failed", "path", path, "error", err)
			p.recent.Remove(path)
			p.view.SetRecent(p.recent.Paths())
			p.status.Flash("Cannot open "+filepath.Base(path), 5*time.Second)
			return
		}
		p.loadBytes(filepath.Base(path), path, data)
	})
}

// LoadRecent reopens an entry of the recent walls list.
func (p *ImagePresenter) LoadRecent(path string) { p.LoadFile(path) }

// CaptureScreen grabs the primary display and loads it as the wall.
func (p *ImagePresenter) CaptureScreen() {
	var (
		shot capture.Shot
		err  error
	)
	p.run.do(func() {
		shot, err = capture.Snapshot(p.grab, p.now())
	}, func() {
		if err != nil {
			p.logger.Error("screen capture failed", "error", err)
			p.status.Flash("Screen capture failed", 5*time.Second)
			return
		}
		p.loadBytes(shot.Name, "", shot.Data)
	})
}

// loadBytes resets the session and starts decode and upload of data.
func (p *ImagePresenter) loadBytes(name, path string, data []byte) {
	p.gen++
	gen := p.gen
	p.load = &pendingLoad{gen: gen}

	p.drawer.Cancel()
	p.session.Reset()
	p.overlay.Clear()
	p.logger.Info("loading image", "name", name, "size", len(data))

	var (
		img  image.Image
		derr error
	)
	p.run.do(func() {
		img, derr = images.Decode(data)
	}, func() {
		if gen != p.gen {
			return
		}
		if derr != nil {
			p.logger.Error("decode image failed", "name", name, "error", derr)
			p.status.Flash("Unsupported image: "+name, 5*time.Second)
			p.load = nil
			p.canvas.Reset()
			return
		}
		p.show(name, path, int64(len(data)), img)
		p.load.decoded = true
		p.maybeSelectBox(gen)
	})

	if p.uploader == nil {
		return
	}
	var (
		resp string
		uerr error
	)
	p.run.do(func() {
		ctx, cancel := contextWithTimeout(p.timeout)
		defer cancel()
		resp, uerr = p.uploader.UploadImage(ctx, name, bytes.NewReader(data))
	}, func() {
		if gen != p.gen {
			return
		}
		if uerr != nil {
			p.logger.Error("upload_image failed", "name", name, "error", uerr)
			p.status.Flash("Upload failed: "+uerr.Error(), 5*time.Second)
			return
		}
		p.logger.Info("upload_image", "name", name, "response", resp)
		if p.load != nil {
			p.load.uploaded = true
		}
		p.maybeSelectBox(gen)
	})
}

func (p *ImagePresenter) show(name, path string, size int64, img image.Image) {
	natural := images.NaturalSize(img)
	layout := annotation.FitDisplay(natural, p.view.ViewportSize(), p.fraction)
	p.canvas.Layout(img, layout)
	p.session.SetImage(annotation.SelectedImage{
		Name:      name,
		Path:      path,
		Size:      size,
		Natural:   natural,
		Displayed: layout.Preview,
	})
	p.view.SetImageInfo(name, fmt.Sprintf("%dx%d, %s", natural.X, natural.Y, humanize.Bytes(uint64(size))))
	if path != "" {
		p.recent.Touch(path, size)
		p.view.SetRecent(p.recent.Paths())
	}
	p.logger.Info("image loaded", "name", name, "natural", natural.String(), "displayed", layout.Preview.String())
}

func (p *ImagePresenter) maybeSelectBox(gen uint64) {
	l := p.load
	if l == nil || l.gen != gen || !l.decoded || !l.uploaded {
		return
	}
	p.load = nil
	if p.modes != nil {
		p.modes.SelectBox()
	}
}

