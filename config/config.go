package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RGB is a normalized color with channels in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Config holds runtime configuration for the region overlay, the capture
// pipeline and the app shell. Fields may be loaded from a JSON file and
// overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Region
	DefaultWidth  float64  `json:"default_width"`
	DefaultHeight float64  `json:"default_height"`
	MinSize       float64  `json:"min_size"`
	EdgeThreshold float64  `json:"edge_threshold"`
	ModifierKeys  []string `json:"modifier_keys"`
	SizePresets   []string `json:"size_presets"`

	// Capture
	Background            RGB    `json:"background"`
	TransparentBackground bool   `json:"transparent_background"`
	PNGCompression        string `json:"png_compression"`
	Display               int    `json:"display"`
	PreviewWidth          int    `json:"preview_width"`
	PreviewHeight         int    `json:"preview_height"`

	// Shell
	CaptureHotkey string `json:"capture_hotkey"`
	Notifications bool   `json:"notifications"`
	SaveCaptures  bool   `json:"save_captures"`
	OutputDir     string `json:"output_dir"`
	DarkMode      bool   `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultWidth:   512,
		DefaultHeight:  512,
		MinSize:        64,
		EdgeThreshold:  10,
		ModifierKeys:   []string{"Shift_L", "Shift_R"},
		SizePresets:    []string{"256x256", "512x512", "800x600", "1024x768"},
		Background:     RGB{R: 1, G: 1, B: 1},
		PNGCompression: "default",
		PreviewWidth:   960,
		PreviewHeight:  640,
		CaptureHotkey:  "ctrl+shift+s",
		Notifications:  true,
		OutputDir:      "captures",
	}
}

// Validate clamps/normalizes values to safe ranges. Malformed size presets
// are dropped and a malformed hotkey falls back to the default.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.MinSize <= 0 {
		c.MinSize = def.MinSize
	}
	if c.DefaultWidth < c.MinSize {
		c.DefaultWidth = max(def.DefaultWidth, c.MinSize)
	}
	if c.DefaultHeight < c.MinSize {
		c.DefaultHeight = max(def.DefaultHeight, c.MinSize)
	}
	if c.EdgeThreshold <= 0 {
		c.EdgeThreshold = def.EdgeThreshold
	}
	keys := c.ModifierKeys[:0]
	for _, k := range c.ModifierKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	c.ModifierKeys = keys
	if len(c.ModifierKeys) == 0 {
		c.ModifierKeys = def.ModifierKeys
	}
	presets := c.SizePresets[:0]
	for _, p := range c.SizePresets {
		if _, _, err := ParseSize(p); err == nil {
			presets = append(presets, strings.TrimSpace(p))
		}
	}
	c.SizePresets = presets
	c.Background.R = clamp01(c.Background.R)
	c.Background.G = clamp01(c.Background.G)
	c.Background.B = clamp01(c.Background.B)
	switch strings.ToLower(c.PNGCompression) {
	case "default", "speed", "best", "none":
		c.PNGCompression = strings.ToLower(c.PNGCompression)
	default:
		c.PNGCompression = def.PNGCompression
	}
	if c.Display < 0 {
		c.Display = 0
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = def.PreviewWidth
	}
	if c.PreviewHeight <= 0 {
		c.PreviewHeight = def.PreviewHeight
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = def.OutputDir
	}
	if _, err := ParseHotkey(c.CaptureHotkey); err != nil {
		c.CaptureHotkey = def.CaptureHotkey
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseSize parses a "WxH" size preset.
func ParseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: width: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: height: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q: must be positive", s)
	}
	return w, h, nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

func to8(v float64) uint8 { return uint8(clamp01(v)*255 + 0.5) }

// ParseHexRGB parses #rrggbb (the leading # is optional).
func ParseHexRGB(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}
