package view

import (
	"image"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/soocke/wall-annotator/config"
	"github.com/soocke/wall-annotator/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Mode button ids, matching the presentation model.
const (
	modeBox   = "button_box"
	modeBrush = "brush"
)

// Handlers are invoked on user actions. Nil handlers are skipped.
type Handlers struct {
	OnLoad      func(path string)
	OnRecent    func(path string)
	OnCapture   func()
	OnBox       func()
	OnBrush     func(size int)
	OnBrushSize func(size int)
	OnErase     func(erase bool)
	OnInference func()
	OnExit      func()
}

// RootView composes the top-level application layout and wires UI callbacks.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	Canvas *WallCanvas

	loadBtn      *ButtonWidget
	captureBtn   *ButtonWidget
	boxBtn       *ButtonWidget
	brushBtn     *ButtonWidget
	eraseBtn     *ButtonWidget
	inferenceBtn *ButtonWidget
	exitBtn      *ButtonWidget
	brushSize    *TextWidget
	recentSelect *TComboboxWidget
	imageLbl     *LabelWidget
	statusLbl    *TLabelWidget

	recent []string
	erase  bool
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout: a toolbar row, an info row and the wall canvas.
func (rv *RootView) Build(h Handlers, placeholder image.Image) {
	if rv == nil {
		return
	}
	bar := Frame()
	Grid(bar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	place := func(w Widget) {
		Grid(w, In(bar), Row(0), Column(col), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		col++
	}

	rv.loadBtn = Button(Txt("Load Image"), Command(func() { rv.chooseFile(h.OnLoad) }))
	place(rv.loadBtn)
	rv.captureBtn = Button(Txt("Capture Screen"), Command(func() { call(h.OnCapture) }))
	place(rv.captureBtn)
	rv.boxBtn = Button(Txt("Box"), Command(func() { call(h.OnBox) }))
	place(rv.boxBtn)
	rv.brushBtn = Button(Txt("Brush"), Command(func() {
		if h.OnBrush != nil {
			h.OnBrush(rv.BrushSize())
		}
	}))
	place(rv.brushBtn)
	rv.brushSize = Text(Height(1), Width(4))
	place(rv.brushSize)
	rv.brushSize.Insert("1.0", strconv.Itoa(rv.cfg.BrushSize))
	Bind(rv.brushSize, "<KeyRelease>", Command(func() {
		if h.OnBrushSize != nil {
			h.OnBrushSize(rv.BrushSize())
		}
	}))
	rv.eraseBtn = Button(Txt("Erase: off"), Command(func() {
		rv.erase = !rv.erase
		label := "Erase: off"
		if rv.erase {
			label = "Erase: on"
		}
		rv.eraseBtn.Configure(Txt(label))
		if h.OnErase != nil {
			h.OnErase(rv.erase)
		}
	}))
	place(rv.eraseBtn)
	rv.inferenceBtn = Button(Txt("Inference"), Command(func() { call(h.OnInference) }))
	place(rv.inferenceBtn)

	rv.recentSelect = TCombobox(Values([]string{"<none>"}), Width(28), Style(theme.StyleRecentBox))
	place(rv.recentSelect)
	rv.recentSelect.Current(0)
	Bind(rv.recentSelect, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(rv.recentSelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(rv.recent) {
			if err != nil && rv.logger != nil {
				rv.logger.Error("recent selection parse error", "error", err)
			}
			return
		}
		if h.OnRecent != nil {
			h.OnRecent(rv.recent[idx])
		}
	}))

	rv.exitBtn = Button(Txt("Exit"), Command(func() { call(h.OnExit) }))
	place(rv.exitBtn)

	rv.imageLbl = Label(Txt("No image"), Anchor("w"))
	Grid(rv.imageLbl, Row(1), Column(0), Sticky("w"), Padx("0.4m"))
	rv.statusLbl = TLabel(Txt("No wall loaded"), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.statusLbl, Row(1), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	rv.Canvas = NewWallCanvas(2, 2, placeholder)
	rv.SelectModeButton("")
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (rv *RootView) chooseFile(onLoad func(string)) {
	if onLoad == nil {
		return
	}
	files := GetOpenFile(Title("Select a wall image"))
	if len(files) == 0 || strings.TrimSpace(files[0]) == "" {
		return
	}
	onLoad(files[0])
}

// BrushSize parses the brush size field, falling back to the configured size.
func (rv *RootView) BrushSize() int {
	if rv == nil || rv.brushSize == nil {
		return 0
	}
	text := strings.TrimSpace(strings.Join(rv.brushSize.Get("1.0", END), ""))
	if n, err := strconv.Atoi(text); err == nil && n > 0 {
		return n
	}
	return rv.cfg.BrushSize
}

// SetControlsEnabled toggles every action control.
func (rv *RootView) SetControlsEnabled(enabled bool) {
	if rv == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, b := range []*ButtonWidget{rv.loadBtn, rv.captureBtn, rv.boxBtn, rv.brushBtn, rv.eraseBtn, rv.inferenceBtn} {
		if b != nil {
			b.Configure(State(state))
		}
	}
	if rv.brushSize != nil {
		rv.brushSize.Configure(State(state))
	}
	if rv.recentSelect != nil {
		if enabled {
			state = "readonly"
		}
		rv.recentSelect.Configure(State(state))
	}
}

// SetBusy shows the wait cursor while the server works.
func (rv *RootView) SetBusy(busy bool) {
	cursor := ""
	if busy {
		cursor = "watch"
	}
	App.Configure(Cursor(cursor))
}

// SelectModeButton highlights the button with id and resets the other one.
func (rv *RootView) SelectModeButton(id string) {
	if rv == nil {
		return
	}
	p := theme.CurrentPalette()
	style := func(b *ButtonWidget, selected bool) {
		if b == nil {
			return
		}
		if selected {
			b.Configure(Background(p.Primary), Foreground("white"))
		} else {
			b.Configure(Background(p.Surface), Foreground(p.Text))
		}
	}
	style(rv.boxBtn, id == modeBox)
	style(rv.brushBtn, id == modeBrush)
}

// Warn shows a modal warning.
func (rv *RootView) Warn(msg string) {
	MessageBox(Icon("warning"), Msg(msg), Title("Wall Annotator"))
}

// SetImageInfo updates the image name label.
func (rv *RootView) SetImageInfo(name, detail string) {
	if rv != nil && rv.imageLbl != nil {
		rv.imageLbl.Configure(Txt(name + " (" + detail + ")"))
	}
}

// SetStatus updates the status label text.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.statusLbl != nil {
		rv.statusLbl.Configure(Txt(text))
	}
}

// SetRecent replaces the recent walls list, most recent first.
func (rv *RootView) SetRecent(paths []string) {
	if rv == nil || rv.recentSelect == nil {
		return
	}
	rv.recent = append(rv.recent[:0], paths...)
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	if len(names) == 0 {
		names = []string{"<none>"}
	}
	rv.recentSelect.Configure(Values(names))
	rv.recentSelect.Current(0)
}

// ViewportSize is the current window area the wall image is fitted into.
// The configured size is used until the window is mapped.
func (rv *RootView) ViewportSize() image.Point {
	w, werr := strconv.Atoi(strings.TrimSpace(WinfoWidth(App)))
	h, herr := strconv.Atoi(strings.TrimSpace(WinfoHeight(App)))
	if werr != nil || herr != nil || w <= 1 || h <= 1 {
		return image.Pt(rv.cfg.WindowWidth, rv.cfg.WindowHeight)
	}
	return image.Pt(w, h)
}
