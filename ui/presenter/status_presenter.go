package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/wall-annotator/domain/annotation"
)

// StatusSource exposes the session counters shown in the status line.
type StatusSource interface {
	Mode() annotation.Mode
	BoxCount() int
	PointCount() int
	HistoryLen() int
	HasImage() bool
}

// BusySource reports whether an inference round is in flight.
type BusySource interface{ Busy() bool }

// StatusView sets the status label in the view.
type StatusView interface{ SetStatus(string) }

// StatusPresenter formats session counters and transient messages into the status label.
type StatusPresenter struct {
	src     StatusSource
	busy    BusySource
	view    StatusView
	latest  string
	message string
	until   time.Time
}

func NewStatusPresenter(src StatusSource, busy BusySource, view StatusView) *StatusPresenter {
	return &StatusPresenter{src: src, busy: busy, view: view}
}

// Flash shows msg in place of the counters for d.
func (p *StatusPresenter) Flash(msg string, d time.Duration) {
	if p == nil {
		return
	}
	p.message = msg
	p.until = time.Now().Add(d)
}

// Tick pushes the current status text to the view when it changed.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	text := p.format(now)
	if text != p.latest {
		p.latest = text
		p.view.SetStatus(text)
	}
}

func (p *StatusPresenter) format(now time.Time) string {
	if p.message != "" && now.Before(p.until) {
		return p.message
	}
	p.message = ""
	if !p.src.HasImage() {
		return "No wall loaded"
	}
	state := "ready"
	if p.busy != nil && p.busy.Busy() {
		state = "processing"
	}
	return fmt.Sprintf("Mode: %s | Boxes: %d | Points: %d | History: %d | %s",
		p.src.Mode(), p.src.BoxCount(), p.src.PointCount(), p.src.HistoryLen(), state)
}
