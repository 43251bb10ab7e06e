package presenter

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/wall-annotator/backend"
	"github.com/soocke/wall-annotator/domain/annotation"
	"github.com/soocke/wall-annotator/domain/brush"
	"github.com/soocke/wall-annotator/ui/images"
	"github.com/soocke/wall-annotator/ui/model"
)

// mockAPI records every request and answers from canned values.
type mockAPI struct {
	uploads  []string
	clicks   []string
	boxes    []backend.BoxPayload
	preview  []byte
	clickErr error
	upErr    error
}

func (m *mockAPI) UploadImage(_ context.Context, name string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	m.uploads = append(m.uploads, name)
	return `{"status":"ok"}`, m.upErr
}

func (m *mockAPI) ButtonClick(_ context.Context, id string, typ backend.ImageType) (backend.Preview, error) {
	m.clicks = append(m.clicks, id)
	if m.clickErr != nil {
		return backend.Preview{}, m.clickErr
	}
	return backend.Preview{Type: typ, Data: m.preview}, nil
}

func (m *mockAPI) SendBox(_ context.Context, box backend.BoxPayload) (string, error) {
	m.boxes = append(m.boxes, box)
	return "received", nil
}

var _ backend.API = (*mockAPI)(nil)

type mockView struct {
	warnings []string
	frames   int
	selected string
	enabled  []bool
	busy     bool
	name     string
	detail   string
	recent   []string
	status   string
	viewport image.Point
}

func (v *mockView) Warn(msg string)                  { v.warnings = append(v.warnings, msg) }
func (v *mockView) ShowFrame(image.Image)            { v.frames++ }
func (v *mockView) SelectModeButton(id string)       { v.selected = id }
func (v *mockView) SetControlsEnabled(enabled bool)  { v.enabled = append(v.enabled, enabled) }
func (v *mockView) SetBusy(busy bool)                { v.busy = busy }
func (v *mockView) SetImageInfo(name, detail string) { v.name, v.detail = name, detail }
func (v *mockView) SetRecent(paths []string)         { v.recent = paths }
func (v *mockView) SetStatus(s string)               { v.status = s }
func (v *mockView) ViewportSize() image.Point        { return v.viewport }

func (v *mockView) controlsEnabled() bool {
	return len(v.enabled) == 0 || v.enabled[len(v.enabled)-1]
}

type fixture struct {
	disp       *Dispatcher
	view       *mockView
	api        *mockAPI
	session    *annotation.Session
	drawer     *annotation.BoxDrawer
	brush      *brush.Controller
	overlay    *model.OverlayModel
	processing *model.ProcessingModel
	recent     *model.RecentImages
	canvas     *CanvasPresenter
	status     *StatusPresenter
	annotate   *AnnotationPresenter
	modes      *ModePresenter
	images     *ImagePresenter
	inference  *InferencePresenter
	files      map[string][]byte
}

func solidPNG(w, h int, c color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return images.EncodePNG(img)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		disp:       &Dispatcher{},
		view:       &mockView{viewport: image.Pt(1000, 1000)},
		api:        &mockAPI{preview: solidPNG(4, 2, color.RGBA{G: 255, A: 255})},
		session:    annotation.NewSession(0),
		brush:      brush.NewController(nil),
		overlay:    model.NewOverlayModel(),
		processing: &model.ProcessingModel{},
		recent:     model.NewRecentImages(5),
		files:      map[string][]byte{},
	}
	f.drawer = annotation.NewBoxDrawer(f.session)
	f.canvas = NewCanvasPresenter(f.view, f.overlay, brush.NewMaskCanvas(1, 1), f.drawer)
	f.status = NewStatusPresenter(f.session, f.processing, f.view)
	f.annotate = NewAnnotationPresenter(f.session, f.drawer, f.brush, f.overlay, f.processing, f.canvas, f.api, f.view, f.disp, time.Second, nil)
	f.modes = NewModePresenter(f.session, model.NewModeModel(), f.brush, f.drawer, f.canvas, f.api, f.view, f.view, f.status, f.disp, backend.ImagePNG, time.Second, nil)
	f.images = NewImagePresenter(f.session, f.drawer, f.overlay, f.recent, f.canvas, f.api, f.modes, f.view, f.status, f.disp, 0.8, time.Second, nil)
	f.inference = NewInferencePresenter(f.session, f.drawer, f.processing, f.overlay, f.canvas, f.api, f.view, f.view, f.status, f.disp, backend.ImagePNG, time.Second, nil)

	// Run background work inline; continuations still go through the dispatcher.
	inline := async{post: f.disp, spawn: func(fn func()) { fn() }}
	f.annotate.run, f.modes.run, f.images.run, f.inference.run = inline, inline, inline, inline
	f.images.readFile = func(path string) ([]byte, error) {
		if b, ok := f.files[path]; ok {
			return b, nil
		}
		return nil, errors.New("no such file")
	}
	return f
}

// settle drains the dispatcher until no callbacks are left.
func (f *fixture) settle() {
	for f.disp.Drain() > 0 {
	}
}

// loadWall loads a 2000x1000 wall and pins the display size to 500x250.
func (f *fixture) loadWall(t *testing.T) {
	t.Helper()
	f.files["/walls/north.png"] = solidPNG(2000, 1000, color.Gray{Y: 90})
	f.images.LoadFile("/walls/north.png")
	f.settle()
	require.True(t, f.session.HasImage())
	f.session.SetDisplayed(image.Pt(500, 250))
}

func TestDispatcher_DrainInOrder(t *testing.T) {
	var d Dispatcher
	var got []int
	for i := range 3 {
		d.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, d.Pending())
	assert.Equal(t, 3, d.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Zero(t, d.Drain())
}

func TestAnnotation_PressWithoutImageWarns(t *testing.T) {
	f := newFixture(t)
	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	f.annotate.Motion(40, 40)
	f.annotate.Release(40, 40)

	assert.Equal(t, []string{annotation.NoImageWarning}, f.view.warnings)
	assert.Zero(t, f.session.BoxCount())
	assert.Equal(t, annotation.DrawIdle, f.drawer.State())
	assert.Equal(t, annotation.ModeBox, f.session.Mode())
	assert.Empty(t, f.api.boxes)
}

func TestImage_LoadUploadsAndSelectsBoxMode(t *testing.T) {
	f := newFixture(t)
	f.files["/walls/north.png"] = solidPNG(2000, 1000, color.Gray{Y: 90})
	f.brush.Enable(12)

	f.images.LoadFile("/walls/north.png")
	f.settle()

	img, ok := f.session.Image()
	require.True(t, ok)
	assert.Equal(t, image.Pt(2000, 1000), img.Natural)
	// viewport 1000x1000 at 0.8: width clamps to 800, preview inset by 8.
	assert.Equal(t, image.Pt(792, 392), img.Displayed)
	assert.Equal(t, image.Pt(792, 392), f.canvas.Frame().Bounds().Size())
	assert.Equal(t, "north.png", f.view.name)
	assert.Contains(t, f.view.detail, "2000x1000")
	assert.Equal(t, []string{"/walls/north.png"}, f.view.recent)

	assert.Equal(t, []string{"north.png"}, f.api.uploads)
	assert.Equal(t, []string{backend.ButtonBox}, f.api.clicks)
	assert.Equal(t, model.ButtonBox, f.view.selected)
	assert.Equal(t, annotation.ModeBox, f.session.Mode())
	assert.False(t, f.brush.Enabled())
}

func TestImage_UploadFailureKeepsImage(t *testing.T) {
	f := newFixture(t)
	f.api.upErr = errors.New("server down")
	f.loadWall(t)

	assert.Empty(t, f.api.clicks)
	assert.Empty(t, f.view.selected)
	f.status.Tick(time.Now())
	assert.Contains(t, f.view.status, "server down")
}

func TestImage_StaleLoadDiscarded(t *testing.T) {
	f := newFixture(t)
	f.files["/walls/a.png"] = solidPNG(40, 20, color.White)
	f.files["/walls/b.png"] = solidPNG(30, 30, color.Black)

	f.images.LoadFile("/walls/a.png")
	f.images.LoadFile("/walls/b.png")
	f.settle()

	img, ok := f.session.Image()
	require.True(t, ok)
	assert.Equal(t, "b.png", img.Name)
	assert.Equal(t, image.Pt(30, 30), img.Natural)
	assert.Equal(t, []string{"/walls/b.png"}, f.view.recent)
	// only the current load selects box mode
	assert.Equal(t, []string{backend.ButtonBox}, f.api.clicks)
}

func TestImage_LoadResetsSession(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)
	_, err := f.session.AddBox(annotation.Rect{X1: 1, Y1: 1, X2: 5, Y2: 5})
	require.NoError(t, err)
	f.overlay.Add(model.Marker{Kind: model.MarkerBox, Display: model.DisplayOutline})

	f.files["/walls/other.png"] = solidPNG(10, 10, color.White)
	f.images.LoadFile("/walls/other.png")
	f.settle()

	assert.Zero(t, f.session.BoxCount())
	assert.Zero(t, f.session.HistoryLen())
	assert.Empty(t, f.overlay.Markers())
	assert.Equal(t, []string{"/walls/other.png", "/walls/north.png"}, f.view.recent)
}

func TestImage_DecodeFailureClearsCanvas(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)
	f.files["/walls/broken.png"] = []byte("not an image")

	f.images.LoadFile("/walls/broken.png")
	f.settle()

	assert.False(t, f.session.HasImage())
	assert.Equal(t, placeholderSize, f.canvas.Frame().Bounds().Size())
	f.status.Tick(time.Now())
	assert.Contains(t, f.view.status, "broken.png")

	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	assert.Equal(t, []string{annotation.NoImageWarning}, f.view.warnings)
}

func TestImage_MissingFileDroppedFromRecent(t *testing.T) {
	f := newFixture(t)
	f.recent.Touch("/walls/gone.png", 10)
	f.images.LoadRecent("/walls/gone.png")
	f.settle()

	assert.False(t, f.session.HasImage())
	assert.Empty(t, f.view.recent)
	assert.Empty(t, f.api.uploads)
}

func TestImage_CaptureScreen(t *testing.T) {
	f := newFixture(t)
	f.images.grab = func() (*image.RGBA, error) { return image.NewRGBA(image.Rect(0, 0, 64, 32)), nil }
	f.images.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	f.images.CaptureScreen()
	f.settle()

	img, ok := f.session.Image()
	require.True(t, ok)
	assert.Equal(t, "screen-20260102-030405.png", img.Name)
	assert.Empty(t, img.Path)
	assert.Empty(t, f.view.recent)
	assert.Equal(t, []string{"screen-20260102-030405.png"}, f.api.uploads)
}

func TestAnnotation_CommitSendsOriginalCoordinates(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)

	f.annotate.Press(50, 50, annotation.ButtonPrimary)
	f.annotate.Motion(30, 40)
	f.annotate.Release(10, 30)
	f.settle()

	boxes := f.session.Boxes()
	require.Len(t, boxes, 1)
	assert.Equal(t, annotation.Rect{X1: 10, Y1: 30, X2: 50, Y2: 50}, boxes[0].Screen)
	assert.Equal(t, []backend.BoxPayload{{X1: 40, Y1: 120, X2: 200, Y2: 200}}, f.api.boxes)

	markers := f.overlay.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, boxes[0].ID, markers[0].ID)
	assert.Equal(t, []string{annotation.HistoryBox}, f.session.HistoryEntries())
}

func TestAnnotation_LeaveCancelsDrag(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)

	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	f.annotate.Motion(20, 20)
	f.annotate.Leave()
	f.annotate.Release(20, 20)

	assert.Zero(t, f.session.BoxCount())
	assert.Equal(t, annotation.DrawIdle, f.drawer.State())
}

func TestMode_BrushCapturesPointer(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)

	f.modes.SelectBrush(16)
	assert.Equal(t, annotation.ModeBrush, f.session.Mode())
	assert.Equal(t, model.ButtonBrush, f.view.selected)
	assert.Equal(t, 16, f.brush.Stroke().Width)

	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	f.annotate.Release(40, 40)
	assert.Zero(t, f.session.BoxCount())
	assert.Equal(t, annotation.DrawIdle, f.drawer.State())

	f.modes.SelectBox()
	f.settle()
	assert.Equal(t, annotation.ModeBox, f.session.Mode())
	assert.False(t, f.brush.Enabled())
	assert.Equal(t, model.ButtonBox, f.view.selected)
}

func TestMode_SelectBoxWithoutImageWarns(t *testing.T) {
	f := newFixture(t)
	f.modes.SelectBox()
	f.settle()

	assert.Equal(t, []string{annotation.NoImageWarning}, f.view.warnings)
	assert.Empty(t, f.api.clicks)
	assert.Empty(t, f.view.selected)
}

func TestMode_SelectBoxSwitchesWhenServerFails(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)
	f.modes.SelectBrush(10)
	f.api.clickErr = errors.New("boom")

	f.modes.SelectBox()
	f.settle()

	assert.Equal(t, annotation.ModeBox, f.session.Mode())
	assert.False(t, f.brush.Enabled())
	assert.Equal(t, model.ButtonBox, f.view.selected)
	f.status.Tick(time.Now())
	assert.Contains(t, f.view.status, "boom")
}

func TestMode_BrushSizeFollowsField(t *testing.T) {
	f := newFixture(t)
	f.modes.SelectBrush(10)

	f.modes.SetBrushSize(24)
	assert.Equal(t, 24, f.brush.Stroke().Width)
	f.modes.SetBrushSize(0)
	assert.Equal(t, 24, f.brush.Stroke().Width)
}

func TestAnnotation_PressIgnoredDuringInference(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)

	f.inference.Run()
	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	f.annotate.Motion(40, 40)
	f.annotate.Release(60, 60)
	f.settle()

	assert.Zero(t, f.session.BoxCount())
	assert.Equal(t, annotation.DrawIdle, f.drawer.State())
	assert.Empty(t, f.api.boxes)
	assert.Empty(t, f.view.warnings)
	assert.Equal(t, []string{"inference-0-0"}, f.session.HistoryEntries())
}

func TestInference_RoundRecordsDelta(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)
	f.api.clicks = nil

	f.annotate.Press(10, 10, annotation.ButtonPrimary)
	f.annotate.Release(60, 60)
	f.settle()

	f.inference.Run()
	// in flight: controls disabled, overlays hidden
	assert.False(t, f.view.controlsEnabled())
	assert.True(t, f.view.busy)
	assert.True(t, f.processing.Busy())
	assert.Empty(t, f.overlay.Visible())

	f.inference.Run() // ignored while busy
	f.settle()

	assert.Equal(t, []string{backend.ButtonInference}, f.api.clicks)
	assert.True(t, f.view.controlsEnabled())
	assert.False(t, f.view.busy)
	assert.False(t, f.processing.Busy())
	assert.Len(t, f.overlay.Visible(), 1)
	assert.Equal(t, []string{annotation.HistoryBox, "inference-0-1"}, f.session.HistoryEntries())

	f.inference.Run()
	f.settle()
	assert.Equal(t, "inference-0-0", f.session.HistoryEntries()[2])
}

func TestInference_FailureRestores(t *testing.T) {
	f := newFixture(t)
	f.loadWall(t)
	f.overlay.Add(model.Marker{Kind: model.MarkerBox, Display: model.DisplayFilled})
	f.api.clickErr = errors.New("model crashed")

	f.inference.Run()
	f.settle()

	assert.Zero(t, f.session.HistoryLen())
	assert.True(t, f.view.controlsEnabled())
	assert.False(t, f.processing.Busy())
	require.Len(t, f.overlay.Visible(), 1)
	assert.Equal(t, model.DisplayFilled, f.overlay.Visible()[0].Display)
	f.status.Tick(time.Now())
	assert.Contains(t, f.view.status, "model crashed")
}

func TestInference_WithoutImageWarns(t *testing.T) {
	f := newFixture(t)
	f.inference.Run()
	assert.Equal(t, []string{annotation.NoImageWarning}, f.view.warnings)
	assert.Empty(t, f.api.clicks)
	assert.False(t, f.processing.Busy())
}

func TestStatusPresenter_Format(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	f.status.Tick(now)
	assert.Equal(t, "No wall loaded", f.view.status)

	f.loadWall(t)
	f.status.Tick(now)
	assert.Equal(t, "Mode: box | Boxes: 0 | Points: 0 | History: 0 | ready", f.view.status)

	f.status.Flash("saved", time.Minute)
	f.status.Tick(now)
	assert.Equal(t, "saved", f.view.status)
	f.status.Tick(now.Add(2 * time.Minute))
	assert.Equal(t, "Mode: box | Boxes: 0 | Points: 0 | History: 0 | ready", f.view.status)
}

func TestLoop_TickDrainsAndSchedules(t *testing.T) {
	f := newFixture(t)
	ran, scheduled := false, 0
	f.disp.Post(func() { ran = true })
	l := NewLoop(f.disp, f.status, func() { scheduled++ })
	l.Tick()
	assert.True(t, ran)
	assert.Equal(t, 1, scheduled)
	assert.Equal(t, "No wall loaded", f.view.status)
}

func TestCanvas_FrameShowsPlaceholderAndDrag(t *testing.T) {
	f := newFixture(t)
	frame := f.canvas.Frame()
	assert.Equal(t, placeholderSize, frame.Bounds().Size())

	f.loadWall(t)
	f.annotate.Press(5, 5, annotation.ButtonPrimary)
	f.annotate.Motion(40, 40)
	frame = f.canvas.Frame()
	assert.Equal(t, image.Pt(792, 392), frame.Bounds().Size())
	r, g, b, _ := frame.At(5, 20).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}
