package annotation

// DrawState enumerates the phases of a box drag gesture.
type DrawState int

const (
	DrawIdle DrawState = iota
	DrawDragging
	DrawCommitted
)

func (s DrawState) String() string {
	switch s {
	case DrawIdle:
		return "idle"
	case DrawDragging:
		return "dragging"
	case DrawCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button. ButtonPrimary is the left button.
type Button int

const (
	ButtonPrimary Button = 1
	ButtonMiddle  Button = 2
	ButtonRight   Button = 3
)

// DrawStateListener is called on each state transition of a BoxDrawer.
type DrawStateListener func(prev, next DrawState)

// BoxDrawer tracks a drag gesture on the wall canvas and commits boxes into a Session.
type BoxDrawer struct {
	session   *Session
	state     DrawState
	start     Point
	preview   Rect
	last      Point
	listeners []DrawStateListener
}

// NewBoxDrawer binds a drawer to the session it commits into.
func NewBoxDrawer(s *Session) *BoxDrawer { return &BoxDrawer{session: s} }

// AddListener registers l for state transitions.
func (d *BoxDrawer) AddListener(l DrawStateListener) { d.listeners = append(d.listeners, l) }

// State reports the current gesture phase.
func (d *BoxDrawer) State() DrawState { return d.state }

// Preview returns the in-progress rectangle and whether a drag is active.
func (d *BoxDrawer) Preview() (Rect, bool) {
	return d.preview, d.state == DrawDragging
}

// LastPointer returns the most recent pointer position seen by Press or Move.
func (d *BoxDrawer) LastPointer() Point { return d.last }

// Press starts a drag. It returns ErrNoImage, changing nothing, when no image
// is loaded. Non-primary buttons and modes other than box are ignored.
func (d *BoxDrawer) Press(p Point, b Button) (bool, error) {
	if !d.session.HasImage() {
		return false, ErrNoImage
	}
	if b != ButtonPrimary || d.session.Mode() != ModeBox {
		return false, nil
	}
	d.transition(DrawDragging)
	d.start = p
	d.last = p
	d.preview = Rect{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
	return true, nil
}

// Move updates the preview rectangle. It reports false when no drag is active.
func (d *BoxDrawer) Move(p Point) (Rect, bool) {
	d.last = p
	if d.state != DrawDragging || d.session.Mode() != ModeBox {
		return Rect{}, false
	}
	d.preview = NormalizeRect(d.start, p)
	return d.preview, true
}

// Release finalizes the drag, converts it to original-image space and commits
// the box. The drawer passes through DrawCommitted and ends idle.
func (d *BoxDrawer) Release(p Point) (Box, bool, error) {
	if d.state != DrawDragging || d.session.Mode() != ModeBox {
		return Box{}, false, nil
	}
	rect := NormalizeRect(d.start, p)
	box, err := d.session.AddBox(rect)
	if err != nil {
		d.reset()
		return Box{}, false, err
	}
	d.transition(DrawCommitted)
	d.reset()
	return box, true, nil
}

// Cancel abandons an in-progress drag without committing.
func (d *BoxDrawer) Cancel() { d.reset() }

func (d *BoxDrawer) reset() {
	d.transition(DrawIdle)
	d.start = Point{}
	d.preview = Rect{}
}

func (d *BoxDrawer) transition(next DrawState) {
	prev := d.state
	if prev == next {
		return
	}
	d.state = next
	for _, l := range d.listeners {
		l(prev, next)
	}
}
