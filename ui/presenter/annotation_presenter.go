package presenter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/soocke/wall-annotator/backend"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/domain/brush"
	"github.com/soocke/wall-annotator/ui/model"
)

// BoxSender submits committed boxes to the inference server.
type BoxSender interface {
	SendBox(ctx context.Context, box backend.BoxPayload) (string, error)
}

// WarnView shows a blocking warning dialog.
type WarnView interface{ Warn(msg string) }

// AnnotationPresenter routes pointer input on the wall canvas to the box
// drawer or the brush depending on the session mode.
type AnnotationPresenter struct {
	session *annotation.Session
	drawer  *annotation.BoxDrawer
	brush   *brush.Controller
	overlay *model.OverlayModel
	busy    *model.ProcessingModel
	canvas  *CanvasPresenter
	sender  BoxSender
	view    WarnView
	logger  *slog.Logger
	run     async
	timeout time.Duration
}

func NewAnnotationPresenter(session *annotation.Session, drawer *annotation.BoxDrawer, br *brush.Controller, overlay *model.OverlayModel, busy *model.ProcessingModel, canvas *CanvasPresenter, sender BoxSender, view WarnView, post Poster, timeout time.Duration, logger *slog.Logger) *AnnotationPresenter {
	return &AnnotationPresenter{
		session: session,
		drawer:  drawer,
		brush:   br,
		overlay: overlay,
		busy:    busy,
		canvas:  canvas,
		sender:  sender,
		view:    view,
		logger:  discardIfNil(logger),
		run:     newAsync(post),
		timeout: timeout,
	}
}

// Press handles a pointer button press at display coordinates (x, y).
// Presses are ignored while an inference round is running.
func (p *AnnotationPresenter) Press(x, y float64, button annotation.Button) {
	if p.busy.Busy() {
		p.logger.Debug("canvas press ignored while busy")
		return
	}
	pt := annotation.Point{X: x, Y: y}
	if p.session.Mode() == annotation.ModeBrush {
		p.brush.StartStroke(pt)
		return
	}
	started, err := p.drawer.Press(pt, button)
	if errors.Is(err, annotation.ErrNoImage) {
		p.view.Warn(annotation.NoImageWarning)
		return
	}
	if started {
		p.canvas.Redraw()
	}
	p.logger.Debug("canvas press", "mode", p.session.Mode().String(), "drawing", p.drawer.State() == annotation.DrawDragging)
}

// Motion handles pointer movement.
func (p *AnnotationPresenter) Motion(x, y float64) {
	pt := annotation.Point{X: x, Y: y}
	if p.session.Mode() == annotation.ModeBrush {
		p.brush.ContinueStroke(pt)
		return
	}
	if _, ok := p.drawer.Move(pt); ok {
		p.canvas.Redraw()
	}
}

// Release handles a pointer button release. A finished drag becomes a box
// marker and is sent to the server in original-image coordinates.
func (p *AnnotationPresenter) Release(x, y float64) {
	pt := annotation.Point{X: x, Y: y}
	if p.session.Mode() == annotation.ModeBrush {
		p.brush.StopStroke()
		return
	}
	box, ok, err := p.drawer.Release(pt)
	if err != nil {
		p.logger.Error("box commit failed", "error", err)
		p.canvas.Redraw()
		return
	}
	if !ok {
		return
	}
	p.overlay.Add(model.Marker{
		ID:      box.ID,
		Kind:    model.MarkerBox,
		Display: model.DisplayOutline,
		X1:      box.Screen.X1, Y1: box.Screen.Y1, X2: box.Screen.X2, Y2: box.Screen.Y2,
	})
	p.canvas.Redraw()
	p.send(box)
}

// Leave drops an in-progress drag when the pointer leaves the canvas.
func (p *AnnotationPresenter) Leave() {
	if p.drawer.State() == annotation.DrawDragging {
		p.drawer.Cancel()
		p.canvas.Redraw()
	}
}

func (p *AnnotationPresenter) send(box annotation.Box) {
	if p.sender == nil {
		return
	}
	payload := backend.BoxPayload{X1: box.Original.X1, Y1: box.Original.Y1, X2: box.Original.X2, Y2: box.Original.Y2}
	p.logger.Info("box committed", "id", box.ID.String(), "screen", box.Screen.String(), "original", box.Original.String())
	var (
		ack string
		err error
	)
	p.run.do(func() {
		ctx, cancel := contextWithTimeout(p.timeout)
		defer cancel()
		ack, err = p.sender.SendBox(ctx, payload)
	}, func() {
		if err != nil {
			p.logger.Error("box_receive failed", "id", box.ID.String(), "error", err)
			return
		}
		p.logger.Info("box_receive", "response", ack)
	})
}

func contextWithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
