package app

import (
	"log/slog"
	"time"

	"github.com/soocke/wall-annotator/backend"
	"github.com/soocke/wall-annotator/config"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/domain/brush"
	"github.com/soocke/wall-annotator/ui/model"
	"github.com/soocke/wall-annotator/ui/presenter"
	"github.com/soocke/wall-annotator/ui/view"
)

// AppContainer assembles domain state, models, the backend client, presenters
// and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Session    *annotation.Session
	Drawer     *annotation.BoxDrawer
	Brush      *brush.Controller
	Mask       *brush.MaskCanvas
	Overlay    *model.OverlayModel
	Processing *model.ProcessingModel
	Modes      *model.ModeModel
	Recent     *model.RecentImages
	Client     *backend.Client
	Dispatch   *presenter.Dispatcher
	RootView   *view.RootView

	// Presenters, wired by WirePresenters once the view is built.
	Canvas     *presenter.CanvasPresenter
	Status     *presenter.StatusPresenter
	Annotation *presenter.AnnotationPresenter
	Mode       *presenter.ModePresenter
	Images     *presenter.ImagePresenter
	Inference  *presenter.InferencePresenter
	Loop       *presenter.Loop
}

// BuildContainer constructs state and services. No Tk calls are made here.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	if logger == nil {
		logger = slog.Default()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Session = annotation.NewSession(cfg.HistoryCapacity)
	c.Drawer = annotation.NewBoxDrawer(c.Session)
	c.Drawer.AddListener(func(prev, next annotation.DrawState) {
		logger.Debug("box draw transition", "from", prev.String(), "to", next.String())
	})
	c.Brush = brush.NewController(logger)
	c.Mask = brush.NewMaskCanvas(1, 1)
	c.Overlay = model.NewOverlayModel()
	c.Processing = &model.ProcessingModel{}
	c.Modes = model.NewModeModel()
	c.Recent = model.NewRecentImages(cfg.RecentLimit)
	c.Recent.Seed(cfg.Recent)
	c.Client = backend.NewClient(cfg.ServerURL, c.timeout())
	c.Dispatch = &presenter.Dispatcher{}
	c.RootView = view.NewRootView(cfg, logger)
	return c
}

func (c *AppContainer) timeout() time.Duration {
	return time.Duration(c.Config.RequestTimeoutSeconds) * time.Second
}

// WirePresenters connects presenters to the built view. schedule re-arms the UI tick.
func (c *AppContainer) WirePresenters(schedule func()) {
	typ := backend.ImageType(c.Config.ImageType)
	timeout := c.timeout()
	rv := c.RootView

	c.Canvas = presenter.NewCanvasPresenter(rv.Canvas, c.Overlay, c.Mask, c.Drawer)
	c.Status = presenter.NewStatusPresenter(c.Session, c.Processing, rv)
	c.Annotation = presenter.NewAnnotationPresenter(c.Session, c.Drawer, c.Brush, c.Overlay, c.Processing, c.Canvas, c.Client, rv, c.Dispatch, timeout, c.Logger)
	c.Mode = presenter.NewModePresenter(c.Session, c.Modes, c.Brush, c.Drawer, c.Canvas, c.Client, rv, rv, c.Status, c.Dispatch, typ, timeout, c.Logger)
	c.Images = presenter.NewImagePresenter(c.Session, c.Drawer, c.Overlay, c.Recent, c.Canvas, c.Client, c.Mode, rv, c.Status, c.Dispatch, c.Config.ViewportFraction, timeout, c.Logger)
	c.Inference = presenter.NewInferencePresenter(c.Session, c.Drawer, c.Processing, c.Overlay, c.Canvas, c.Client, rv, rv, c.Status, c.Dispatch, typ, timeout, c.Logger)
	c.Loop = presenter.NewLoop(c.Dispatch, c.Status, schedule)

	rv.Canvas.Bind(pointer{c.Annotation})
	rv.SetRecent(c.Recent.Paths())
	c.Canvas.Redraw()
}

// Handlers maps view actions onto presenters. Presenters are resolved lazily
// because the view is built before they exist.
func (c *AppContainer) Handlers(onExit func()) view.Handlers {
	return view.Handlers{
		OnLoad:      func(path string) { c.Images.LoadFile(path) },
		OnRecent:    func(path string) { c.Images.LoadRecent(path) },
		OnCapture:   func() { c.Images.CaptureScreen() },
		OnBox:       func() { c.Mode.SelectBox() },
		OnBrush:     func(size int) { c.Mode.SelectBrush(size) },
		OnBrushSize: func(size int) { c.Mode.SetBrushSize(size) },
		OnErase:     func(erase bool) { c.Mode.SetErase(erase) },
		OnInference: func() { c.Inference.Run() },
		OnExit:      onExit,
	}
}

// SaveRecent persists the recent walls list into the config file.
func (c *AppContainer) SaveRecent() error {
	c.Config.Recent = c.Recent.Paths()
	return c.Config.Save(c.ConfigPath)
}

// pointer adapts canvas pointer events to the annotation presenter. The
// canvas only binds the primary button.
type pointer struct{ p *presenter.AnnotationPresenter }

func (a pointer) Press(x, y float64)   { a.p.Press(x, y, annotation.ButtonPrimary) }
func (a pointer) Motion(x, y float64)  { a.p.Motion(x, y) }
func (a pointer) Release(x, y float64) { a.p.Release(x, y) }
func (a pointer) Leave()               { a.p.Leave() }
