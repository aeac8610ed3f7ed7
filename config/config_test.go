package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultWidth != 512 || cfg.DefaultHeight != 512 || cfg.MinSize != 64 || cfg.EdgeThreshold != 10 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.ModifierKeys) != 2 || cfg.ModifierKeys[0] != "Shift_L" {
		t.Fatalf("unexpected modifier keys %v", cfg.ModifierKeys)
	}
}

func TestSaveLoad_PreservesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.DefaultWidth = 300
	cfg.TransparentBackground = true
	cfg.Background = RGB{R: 0.5, G: 0.25, B: 0}
	cfg.CaptureHotkey = "ctrl+alt+p"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultWidth != 300 || !got.TransparentBackground || got.Background != cfg.Background || got.CaptureHotkey != "ctrl+alt+p" {
		t.Fatalf("fields not preserved: %+v", got)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.MinSize != 64 {
		t.Fatalf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		DefaultWidth:   10,
		MinSize:        -1,
		EdgeThreshold:  0,
		ModifierKeys:   []string{"  ", ""},
		SizePresets:    []string{"100x200", "bogus", "0x5", " 640 x 480 "},
		Background:     RGB{R: 2, G: -1, B: 0.5},
		PNGCompression: "BEST",
		Display:        -3,
	}
	_ = cfg.Validate()
	if cfg.MinSize != 64 || cfg.DefaultWidth != 512 || cfg.DefaultHeight != 512 {
		t.Fatalf("sizes not clamped: %+v", cfg)
	}
	if cfg.EdgeThreshold != 10 {
		t.Fatalf("edge threshold not defaulted: %v", cfg.EdgeThreshold)
	}
	if len(cfg.ModifierKeys) != 2 {
		t.Fatalf("modifier keys not defaulted: %v", cfg.ModifierKeys)
	}
	if len(cfg.SizePresets) != 2 || cfg.SizePresets[0] != "100x200" || cfg.SizePresets[1] != "640 x 480" {
		t.Fatalf("unexpected presets %q", cfg.SizePresets)
	}
	if cfg.Background != (RGB{R: 1, G: 0, B: 0.5}) {
		t.Fatalf("background not clamped: %+v", cfg.Background)
	}
	if cfg.PNGCompression != "best" || cfg.Display != 0 {
		t.Fatalf("unexpected compression/display %q %d", cfg.PNGCompression, cfg.Display)
	}
	if cfg.OutputDir != "captures" || cfg.PreviewWidth != 960 {
		t.Fatalf("shell defaults missing: %+v", cfg)
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := ParseSize("800X600")
	if err != nil || w != 800 || h != 600 {
		t.Fatalf("unexpected %v %v %v", w, h, err)
	}
	for _, bad := range []string{"", "800", "ax6", "8x-1"} {
		if _, _, err := ParseSize(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestHexRGB(t *testing.T) {
	c, err := ParseHexRGB("#ff8000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.R != 1 || c.B != 0 || c.Hex() != "#ff8000" {
		t.Fatalf("unexpected %+v %s", c, c.Hex())
	}
	if got := (RGB{R: 1, G: 1, B: 1}).Hex(); got != "#ffffff" {
		t.Fatalf("white hex %s", got)
	}
	for _, bad := range []string{"", "#fff", "#gggggg"} {
		if _, err := ParseHexRGB(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}
