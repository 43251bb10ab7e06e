package theme

// Palette and widget styling for the wall annotator. InitStyles activates
// the base theme; mode buttons are highlighted with the palette's primary colour.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, idle buttons
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#169ae0" // selected mode, matches committed box outlines
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot { return palette(darkMode) }

func palette(dark bool) PaletteSnapshot {
	if dark {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// Style names used with Style(...).
const (
	StyleStatusLabel = "status.TLabel"
	StyleRecentBox   = "recent.TCombobox"
)

var darkMode bool

// InitStyles activates the base theme and applies styles for the given mode.
func InitStyles(dark bool) {
	darkMode = dark
	applyStyles(palette(dark))
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	theme := "azure light"
	if darkMode {
		theme = "azure dark"
	}
	_ = ActivateTheme(theme)
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleStatusLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleRecentBox,
		Foreground(p.Text),
		Padding("2p 1p"),
	)
}
