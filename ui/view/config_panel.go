package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/region-capture/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetEditable(enabled bool)
	ApplyChanges()
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(*config.Config)
	applyBtn  *ButtonWidget
	widgets   map[string]*TextWidget
}

// NewConfigPanel creates the view bound to cfg. onApplied runs after a
// successful apply with the updated config.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("defaultWidth", "Default Width", fmt.Sprintf("%g", c.DefaultWidth))
	makeRow("defaultHeight", "Default Height", fmt.Sprintf("%g", c.DefaultHeight))
	makeRow("minSize", "Min Size", fmt.Sprintf("%g", c.MinSize))
	makeRow("edgeThreshold", "Edge Threshold", fmt.Sprintf("%g", c.EdgeThreshold))
	makeRow("background", "Background (#rrggbb)", c.Background.Hex())
	makeRow("transparent", "Transparent (true/false)", fmt.Sprintf("%t", c.TransparentBackground))
	makeRow("compression", "PNG Compression", c.PNGCompression)
	makeRow("saveCaptures", "Save Captures (true/false)", fmt.Sprintf("%t", c.SaveCaptures))
	makeRow("outputDir", "Output Dir", c.OutputDir)
	makeRow("notifications", "Notifications (true/false)", fmt.Sprintf("%t", c.Notifications))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				*dst = f
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignFloat("defaultWidth", &cfg.DefaultWidth)
	assignFloat("defaultHeight", &cfg.DefaultHeight)
	assignFloat("minSize", &cfg.MinSize)
	assignFloat("edgeThreshold", &cfg.EdgeThreshold)
	assignBool("transparent", &cfg.TransparentBackground)
	assignBool("saveCaptures", &cfg.SaveCaptures)
	assignBool("notifications", &cfg.Notifications)
	if s, ok := v.text("background"); ok {
		if rgb, err := config.ParseHexRGB(s); err == nil {
			cfg.Background = rgb
		} else if v.logger != nil {
			v.logger.Warn("config.background.invalid", "value", s, "error", err)
		}
	}
	if s, ok := v.text("compression"); ok && s != "" {
		cfg.PNGCompression = s
	}
	if s, ok := v.text("outputDir"); ok && s != "" {
		cfg.OutputDir = s
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
