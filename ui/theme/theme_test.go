package theme

import (
	"image/color"
	"testing"

	"github.com/soocke/region-capture/domain/region"
)

func TestOverlayStyle_FollowsPalette(t *testing.T) {
	defer func(d bool) { darkMode = d }(darkMode)
	for _, dark := range []bool{false, true} {
		darkMode = dark
		style := OverlayStyle()
		p := CurrentPalette()
		want := map[region.ModifierMode]string{
			region.ModeNormal:               p.TextMuted,
			region.ModeModifierHeld:         p.Primary,
			region.ModeModifierHeldHovering: p.Accent,
			region.ModeActivelyModifying:    p.Warning,
		}
		for m, hex := range want {
			if got := style.Border[m]; got != hexRGBA(hex) {
				t.Fatalf("dark=%v mode %v: border %+v want %s", dark, m, got, hex)
			}
		}
	}
}

func TestHexRGBA(t *testing.T) {
	if got := hexRGBA("#2563eb"); got != (color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}) {
		t.Fatalf("unexpected %+v", got)
	}
	if got := hexRGBA("bogus"); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("bad hex should fall back to black, got %+v", got)
	}
}
