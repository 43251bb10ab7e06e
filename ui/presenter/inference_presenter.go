package presenter

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/soocke/wall-annotator/backend"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/model"
)

// ControlsView toggles the interactive controls during an inference round.
type ControlsView interface {
	SetControlsEnabled(enabled bool)
	SetBusy(busy bool)
}

// InferencePresenter runs one inference round: controls are disabled and the
// overlays hidden while the server renders, then both are restored.
type InferencePresenter struct {
	session    *annotation.Session
	drawer     *annotation.BoxDrawer
	processing *model.ProcessingModel
	overlay    *model.OverlayModel
	canvas     *CanvasPresenter
	client     ButtonClicker
	controls   ControlsView
	warn       WarnView
	status     *StatusPresenter
	logger     *slog.Logger
	run        async
	typ        backend.ImageType
	timeout    time.Duration
}

func NewInferencePresenter(session *annotation.Session, drawer *annotation.BoxDrawer, processing *model.ProcessingModel, overlay *model.OverlayModel, canvas *CanvasPresenter, client ButtonClicker, controls ControlsView, warn WarnView, status *StatusPresenter, post Poster, typ backend.ImageType, timeout time.Duration, logger *slog.Logger) *InferencePresenter {
	return &InferencePresenter{
		session:    session,
		drawer:     drawer,
		processing: processing,
		overlay:    overlay,
		canvas:     canvas,
		client:     client,
		controls:   controls,
		warn:       warn,
		status:     status,
		logger:     discardIfNil(logger),
		run:        newAsync(post),
		typ:        typ,
		timeout:    timeout,
	}
}

// Run starts an inference round. It is a no-op while a round is in flight.
func (p *InferencePresenter) Run() {
	if !p.session.HasImage() {
		p.warn.Warn(annotation.NoImageWarning)
		return
	}
	if !p.processing.TryBegin() {
		p.logger.Debug("inference already running")
		return
	}
	p.drawer.Cancel()
	p.controls.SetControlsEnabled(false)
	p.controls.SetBusy(true)
	p.overlay.HideAll()
	p.canvas.Redraw()

	var (
		prev backend.Preview
		err  error
	)
	start := time.Now()
	p.run.do(func() {
		ctx, cancel := contextWithTimeout(p.timeout)
		defer cancel()
		prev, err = p.client.ButtonClick(ctx, backend.ButtonInference, p.typ)
	}, func() {
		defer p.finish()
		if err == nil {
			img, derr := images.Decode(prev.Data)
			if derr != nil {
				err = errors.Wrap(derr, "decode inference preview")
			} else {
				p.canvas.SetSource(img)
			}
		}
		if err != nil {
			p.logger.Error("inference failed", "error", err, "elapsed", time.Since(start))
			p.status.Flash("Inference failed: "+err.Error(), 5*time.Second)
			return
		}
		delta, entry := p.session.RecordInference()
		p.logger.Info("inference done", "entry", entry, "points", delta.P, "boxes", delta.B, "elapsed", time.Since(start))
	})
}

func (p *InferencePresenter) finish() {
	p.overlay.RestoreAll()
	p.canvas.Redraw()
	p.controls.SetBusy(false)
	p.controls.SetControlsEnabled(true)
	p.processing.End()
}
