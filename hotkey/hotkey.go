// Package hotkey registers system-wide key combinations. Importing it loads
// golang.design/x/hotkey, which on Linux needs an X display at init, so only
// package main imports it.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/soocke/region-capture/config"
	"golang.design/x/hotkey"
)

var keys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace, "return": hotkey.KeyReturn, "escape": hotkey.KeyEscape,
	"tab": hotkey.KeyTab, "delete": hotkey.KeyDelete,
	"up": hotkey.KeyUp, "down": hotkey.KeyDown, "left": hotkey.KeyLeft, "right": hotkey.KeyRight,
}

func modifier(name string) (hotkey.Modifier, bool) {
	switch name {
	case "ctrl":
		return hotkey.ModCtrl, true
	case "shift":
		return hotkey.ModShift, true
	}
	return platformModifier(name)
}

// Global triggers a callback on a system-wide key combination.
type Global struct {
	hk     *hotkey.Hotkey
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// Register registers combo and calls fn from a listener goroutine on every
// key down. fn must be safe to call off the UI thread.
func Register(combo string, fn func(), logger *slog.Logger) (*Global, error) {
	parsed, err := config.ParseHotkey(combo)
	if err != nil {
		return nil, err
	}
	var mods []hotkey.Modifier
	for _, name := range parsed.Modifiers {
		m, ok := modifier(name)
		if !ok {
			return nil, fmt.Errorf("hotkey %q: modifier %q unsupported on this platform", combo, name)
		}
		mods = append(mods, m)
	}
	key, ok := keys[parsed.Key]
	if !ok {
		return nil, fmt.Errorf("hotkey %q: key %q unsupported", combo, parsed.Key)
	}
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %q: %w", combo, err)
	}
	g := &Global{hk: hk, done: make(chan struct{}), logger: logger}
	go g.listen(fn)
	if logger != nil {
		logger.Info("hotkey.registered", "hotkey", combo)
	}
	return g, nil
}

func (g *Global) listen(fn func()) {
	for {
		select {
		case <-g.done:
			return
		case <-g.hk.Keydown():
			if g.logger != nil {
				g.logger.Debug("hotkey.pressed")
			}
			fn()
		}
	}
}

// Close unregisters the hotkey and stops the listener.
func (g *Global) Close() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		close(g.done)
		if err := g.hk.Unregister(); err != nil && g.logger != nil {
			g.logger.Warn("hotkey.unregister.failed", "error", err)
		}
	})
}
