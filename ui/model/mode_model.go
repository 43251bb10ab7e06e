package model

import "github.com/soocke/wall-annotator/domain/annotation"

// Mode button ids; one is highlighted at a time.
const (
	ButtonBox   = "button_box"
	ButtonBrush = "brush"
)

// ModeModel holds the highlighted mode button. The interaction mode itself lives in the session.
type ModeModel struct {
	selected string
}

func NewModeModel() *ModeModel { return &ModeModel{} }

// Select highlights buttonID. It reports whether the selection changed.
func (m *ModeModel) Select(buttonID string) bool {
	if m == nil || m.selected == buttonID {
		return false
	}
	m.selected = buttonID
	return true
}

// ButtonFor maps a mode to its button id.
func ButtonFor(mode annotation.Mode) string {
	switch mode {
	case annotation.ModeBrush:
		return ButtonBrush
	default:
		return ButtonBox
	}
}
