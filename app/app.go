package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/region-capture/config"
	"github.com/soocke/region-capture/debug"
	"github.com/soocke/region-capture/ui/theme"
	"github.com/soocke/region-capture/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tick = 50 * time.Millisecond
	// concealSettle gives the window manager time to drop the hidden window
	// from the screen before a capture grab.
	concealSettle = 150 * time.Millisecond
)

type app struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	afterID string

	c              *AppContainer
	registerHotkey HotkeyRegistrar
	closeHotkey    func()
}

// HotkeyRegistrar registers a global key combination that calls fn from any
// goroutine. The returned func unregisters it.
type HotkeyRegistrar func(combo string, fn func()) (unregister func(), err error)

// NewApp creates the application window. Widgets are built in Start. A nil
// registerHotkey disables the global hotkey.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger, registerHotkey HotkeyRegistrar) *app {
	ctx, cancel := context.WithCancel(context.Background())
	a := &app{cfg: cfg, cfgPath: cfgPath, logger: logger, ctx: ctx, cancel: cancel, registerHotkey: registerHotkey}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+60+60", cfg.PreviewWidth+420, cfg.PreviewHeight+120))
	return a
}

func (a *app) Start() {
	theme.SetDark(a.cfg.DarkMode)
	a.c = BuildContainer(a.ctx, a.cfg, a.cfgPath, ScreenOptions{
		Hide:   func() { WmAttributes(App, "-alpha", 0) },
		Show:   func() { WmAttributes(App, "-alpha", 1) },
		Settle: concealSettle,
	}, a.logger)
	rp := a.c.RegionPresenter
	a.c.RootView.Build(view.Handlers{
		OnCapture:     a.c.TriggerCapture,
		OnReset:       rp.Reset,
		OnSize:        rp.SetSize,
		OnExit:        a.exitHandler,
		OnConfigApply: a.c.ApplyConfig,
		RegionInput:   rp,
	})
	a.c.Loop.Schedule = a.scheduleUpdate

	if a.registerHotkey != nil {
		unregister, err := a.registerHotkey(a.cfg.CaptureHotkey, func() { a.c.CapturePresenter.Trigger() })
		if err != nil {
			a.logger.Warn("hotkey.unavailable", "hotkey", a.cfg.CaptureHotkey, "error", err)
		} else {
			a.closeHotkey = unregister
		}
	}

	if a.cfg.Debug {
		debug.StartGoroutineLogger(a.ctx, 5*time.Second, a.c.Pipeline, a.logger)
		debug.StartMemLogger(a.ctx, 5*time.Second, a.logger)
	}

	a.c.Screen.Start()
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) update() {
	if a.c == nil {
		return
	}
	a.c.Tick()
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps every view update on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.update() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.closeHotkey != nil {
		a.closeHotkey()
	}
	if a.c != nil {
		a.c.Close()
	}
	a.cancel()
	a.logger.Info("app.exit")
	Destroy(App)
}
