package presenter

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/wall-annotator/backend"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/domain/brush"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/model"
)

// ButtonClicker issues /button_click requests.
type ButtonClicker interface {
	ButtonClick(ctx context.Context, buttonID string, typ backend.ImageType) (backend.Preview, error)
}

// ModeView highlights the active mode button.
type ModeView interface{ SelectModeButton(id string) }

// ModePresenter switches between box and brush mode.
type ModePresenter struct {
	session *annotation.Session
	modes   *model.ModeModel
	brush   *brush.Controller
	drawer  *annotation.BoxDrawer
	canvas  *CanvasPresenter
	client  ButtonClicker
	view    ModeView
	warn    WarnView
	status  *StatusPresenter
	logger  *slog.Logger
	run     async
	typ     backend.ImageType
	timeout time.Duration
}

func NewModePresenter(session *annotation.Session, modes *model.ModeModel, br *brush.Controller, drawer *annotation.BoxDrawer, canvas *CanvasPresenter, client ButtonClicker, view ModeView, warn WarnView, status *StatusPresenter, post Poster, typ backend.ImageType, timeout time.Duration, logger *slog.Logger) *ModePresenter {
	return &ModePresenter{
		session: session,
		modes:   modes,
		brush:   br,
		drawer:  drawer,
		canvas:  canvas,
		client:  client,
		view:    view,
		warn:    warn,
		status:  status,
		logger:  discardIfNil(logger),
		run:     newAsync(post),
		typ:     typ,
		timeout: timeout,
	}
}

// SelectBox switches to box mode and asks the server for the box-mode
// preview. The mode switch does not wait for the server; only the preview does.
func (p *ModePresenter) SelectBox() {
	if !p.session.HasImage() {
		p.warn.Warn(annotation.NoImageWarning)
		return
	}
	p.brush.Disable()
	p.apply(annotation.ModeBox)
	p.logger.Info("mode selected", "mode", annotation.ModeBox.String())

	var (
		prev backend.Preview
		err  error
	)
	p.run.do(func() {
		ctx, cancel := contextWithTimeout(p.timeout)
		defer cancel()
		prev, err = p.client.ButtonClick(ctx, backend.ButtonBox, p.typ)
	}, func() {
		if err != nil {
			p.logger.Error("button_click box failed", "error", err)
			p.status.Flash("Box preview failed: "+err.Error(), 5*time.Second)
			return
		}
		img, derr := images.Decode(prev.Data)
		if derr != nil {
			p.logger.Error("box preview decode failed", "error", derr)
			p.status.Flash("Box preview failed: "+derr.Error(), 5*time.Second)
			return
		}
		p.canvas.SetSource(img)
	})
}

// apply records mode and highlights its button.
func (p *ModePresenter) apply(mode annotation.Mode) {
	p.session.SetMode(mode)
	id := model.ButtonFor(mode)
	if p.modes.Select(id) {
		p.view.SelectModeButton(id)
	}
}

// SelectBrush enables the brush at size and highlights the brush button.
// Any in-progress box drag is dropped.
func (p *ModePresenter) SelectBrush(size int) {
	if p.drawer.State() == annotation.DrawDragging {
		p.drawer.Cancel()
		p.canvas.Redraw()
	}
	p.brush.Enable(size)
	p.apply(annotation.ModeBrush)
	p.logger.Info("mode selected", "mode", annotation.ModeBrush.String(), "size", p.brush.Stroke().Width)
}

// SetBrushSize follows edits of the brush size field.
func (p *ModePresenter) SetBrushSize(size int) {
	p.brush.SetSize(size)
	p.logger.Debug("brush size", "size", p.brush.Stroke().Width)
}

// SetErase toggles the brush between paint and erase.
func (p *ModePresenter) SetErase(erase bool) { p.brush.SetErase(erase) }
