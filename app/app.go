package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/wall-annotator/config"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/theme"
)

const (
	tick = 50 * time.Millisecond
)

type app struct {
	container *AppContainer
	logger    *slog.Logger
	afterID   string
}

func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{container: BuildContainer(cfg, cfgPath, logger), logger: logger}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	return a
}

// Container exposes the assembled components, e.g. for debug probes.
func (a *app) Container() *AppContainer { return a.container }

func (a *app) Start() {
	c := a.container
	theme.InitStyles(c.Config.DarkMode)
	c.RootView.Build(c.Handlers(a.exitHandler), images.Placeholder(640, 400))
	c.WirePresenters(a.scheduleUpdate)

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) exitHandler() {
	if err := a.container.SaveRecent(); err != nil {
		a.logger.Error("config save failed", "path", a.container.ConfigPath, "error", err)
	}
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.container.Loop.Tick() })
}
