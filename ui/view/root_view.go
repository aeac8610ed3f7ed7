package view

import (
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/region-capture/config"
	"github.com/soocke/region-capture/domain/region"
	"github.com/soocke/region-capture/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions RootView forwards.
type Handlers struct {
	OnCapture     func()
	OnReset       func()
	OnSize        func(w, h float64)
	OnExit        func()
	OnConfigApply func(*config.Config)
	RegionInput   RegionInput
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats       CaptureStats
	Overlay     RegionOverlay
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	// Widgets
	ModeLabel    *TLabelWidget
	StatusLabel  *TLabelWidget
	CaptureBtn   *TButtonWidget
	ResetBtn     *TButtonWidget
	SizeSelect   *TComboboxWidget
	captureState string
	resetState   string
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: a toolbar row, the viewport with its overlay,
// a status line and a side column with settings and the last capture.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	top := Frame()
	Grid(top, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))

	rv.ModeLabel = TLabel(Txt("Mode: "+region.ModeNormal.String()), Width(22), Style(theme.StyleModeLabel))
	Grid(rv.ModeLabel, In(top), Row(0), Column(0), Sticky("w"), Padx("0.4m"))
	rv.Stats = NewCaptureStats(top, 0, 1)

	rv.CaptureBtn = TButton(Txt("Capture"), Style(theme.StylePrimaryButton), Command(h.OnCapture))
	Grid(rv.CaptureBtn, In(top), Row(0), Column(3), Sticky("e"), Padx("0.2m"))
	rv.ResetBtn = TButton(Txt("Reset Region"), Command(h.OnReset), State("disabled"))
	Grid(rv.ResetBtn, In(top), Row(0), Column(4), Sticky("e"), Padx("0.2m"))
	rv.resetState = "disabled"

	presets := rv.cfg.SizePresets
	if len(presets) == 0 {
		presets = []string{"<none>"}
	}
	rv.SizeSelect = TCombobox(Values(presets), Width(12))
	Grid(rv.SizeSelect, In(top), Row(0), Column(5), Sticky("e"), Padx("0.2m"))
	Bind(rv.SizeSelect, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(rv.SizeSelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(presets) {
			if rv.logger != nil {
				rv.logger.Error("size preset selection parse error", "error", err)
			}
			return
		}
		w, hh, err := config.ParseSize(presets[idx])
		if err != nil {
			if rv.logger != nil {
				rv.logger.Error("size preset invalid", "preset", presets[idx], "error", err)
			}
			return
		}
		if h.OnSize != nil {
			h.OnSize(w, hh)
		}
	}))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.OnExit))
	Grid(exitBtn, In(top), Row(0), Column(6), Sticky("e"), Padx("0.2m"))

	body := Frame()
	Grid(body, Row(1), Column(0), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	rv.Overlay = NewRegionOverlay(body, 0)
	rv.Overlay.Bind(h.RegionInput)
	rv.StatusLabel = TLabel(Txt("Hold Shift to move or resize the region"), Anchor("w"), Style(theme.StyleAccentLabel))
	Grid(rv.StatusLabel, In(body), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	side := Frame()
	Grid(side, Row(1), Column(1), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnConfigApply)
	endRow := rv.ConfigPanel.Build(side, 0)
	rv.CapturePrev = NewCapturePreview(side, endRow)
}

// ShowViewport displays the composed viewport image.
func (rv *RootView) ShowViewport(img image.Image) {
	if rv != nil && rv.Overlay != nil {
		rv.Overlay.ShowViewport(img)
	}
}

// SetCursor sets the cursor over the viewport.
func (rv *RootView) SetCursor(name string) {
	if rv != nil && rv.Overlay != nil {
		rv.Overlay.SetCursor(name)
	}
}

// SetResetVisible enables the reset button when the region differs from its
// default.
func (rv *RootView) SetResetVisible(visible bool) {
	if rv == nil || rv.ResetBtn == nil {
		return
	}
	state := "disabled"
	if visible {
		state = "normal"
	}
	if state != rv.resetState {
		rv.resetState = state
		rv.ResetBtn.Configure(State(state))
	}
}

func (rv *RootView) ShowCapture(pngBytes []byte, width, height int) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Show(pngBytes)
	}
}

func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetCaptureEnabled toggles the capture button and config editing together.
func (rv *RootView) SetCaptureEnabled(enabled bool) {
	if rv == nil || rv.CaptureBtn == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	if state == rv.captureState {
		return
	}
	rv.captureState = state
	rv.CaptureBtn.Configure(State(state))
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

func (rv *RootView) SetMode(m region.ModifierMode) {
	if rv == nil || rv.ModeLabel == nil {
		return
	}
	rv.ModeLabel.Configure(Txt(fmt.Sprintf("Mode: %s", m)), Background(theme.ModeColor(m)))
}

func (rv *RootView) SetStats(captures, failures uint64, avg time.Duration) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetStats(captures, failures, avg)
	}
}
