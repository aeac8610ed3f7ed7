package theme

// Centralized theming for the region capture UI: palette constants, SetDark
// to activate a base theme with semantic widget styles, and the overlay
// colors derived from the same palette.

import (
	"fmt"
	"image/color"

	"github.com/soocke/region-capture/domain/region"
	"github.com/soocke/region-capture/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorWarning   = "#f59e0b"
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
	Warning   string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Accent:    "#10b981",
			Warning:   "#fbbf24",
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
		Warning:   ColorWarning,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// ModeColor is the mode label background for a region modifier mode. It
// matches the overlay border colors.
func ModeColor(m region.ModifierMode) string {
	p := CurrentPalette()
	switch m {
	case region.ModeModifierHeld:
		return p.Primary
	case region.ModeModifierHeldHovering:
		return p.Accent
	case region.ModeActivelyModifying:
		return p.Warning
	default:
		return p.TextMuted
	}
}

// ModeRGBA is ModeColor as an opaque color for image rendering.
func ModeRGBA(m region.ModifierMode) color.RGBA {
	return hexRGBA(ModeColor(m))
}

func hexRGBA(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}

// OverlayStyle is the region overlay style with borders in the mode colors
// of the active palette.
func OverlayStyle() images.OverlayStyle {
	var borders [4]color.RGBA
	for m := range borders {
		borders[m] = ModeRGBA(region.ModifierMode(m))
	}
	return images.NewOverlayStyle(borders)
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAccentLabel   = "accent.TLabel"
	StyleModeLabel     = "mode.TLabel"
)

var darkMode bool

// SetDark sets dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

func applyStyles(dark bool) {
	_ = ActivateTheme("azure light")
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))

	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleAccentLabel,
		Foreground(p.Primary),
		Background(p.Surface),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleModeLabel,
		Foreground(func() string {
			if dark {
				return "#f0fdf4"
			}
			return "white"
		}()),
		Background(p.TextMuted),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
