package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/region-capture/config"
	"github.com/soocke/region-capture/domain/capture"
	"github.com/soocke/region-capture/domain/region"
	"github.com/soocke/region-capture/notify"
	"github.com/soocke/region-capture/storage"
	"github.com/soocke/region-capture/ui/model"
	"github.com/soocke/region-capture/ui/presenter"
	"github.com/soocke/region-capture/ui/theme"
	"github.com/soocke/region-capture/ui/view"
)

// AppContainer assembles the domain services, models, presenters and the
// root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Screen     *capture.ScreenRenderer
	Concealer  *windowConcealer
	Region     *region.Controller
	Published  *publishedRegion
	Encoder    *capture.PNGEncoder
	Background *configBackground
	Pipeline   *capture.Pipeline
	Notifier   *notify.CaptureNotifier
	Storage    *storage.Storage

	Capture  *model.CaptureModel
	Results  *model.ResultModel
	RootView *view.RootView

	// Presenters
	RegionPresenter  *presenter.RegionPresenter
	ModePresenter    *presenter.ModePresenter
	CapturePresenter *presenter.CapturePresenter
	StatsPresenter   *presenter.StatsPresenter
	Loop             *presenter.Loop
}

// ScreenOptions selects the captured screen area. Zero values use the
// configured display and the system screenshot backend. Hide and Show run on
// the UI thread around each capture grab; Settle is the wait after Hide before
// the grab.
type ScreenOptions struct {
	Bounds image.Rectangle
	Grab   capture.GrabFunc
	Hide   func()
	Show   func()
	Settle time.Duration
}

// BuildContainer constructs all components without touching Tk.
func BuildContainer(ctx context.Context, cfg *config.Config, cfgPath string, screen ScreenOptions, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	bounds := screen.Bounds
	if bounds.Empty() {
		bounds = capture.DisplayBounds(cfg.Display)
	}
	c.Screen = capture.NewScreenRenderer(bounds, cfg.PreviewWidth, cfg.PreviewHeight, screen.Grab, logger)
	if screen.Hide != nil && screen.Show != nil {
		c.Concealer = newWindowConcealer(screen.Hide, screen.Show, screen.Settle)
		c.Screen.SetConcealer(c.Concealer)
	}
	c.Region = region.NewController(clientViewport{vp: c.Screen}, region.Options{
		DefaultWidth:  cfg.DefaultWidth,
		DefaultHeight: cfg.DefaultHeight,
		MinSize:       cfg.MinSize,
		EdgeThreshold: cfg.EdgeThreshold,
	}, logger)
	c.Published = &publishedRegion{}
	c.Published.publish(c.Region.CurrentRegion())
	c.Encoder = capture.NewPNGEncoder(capture.ParseCompression(cfg.PNGCompression))
	c.Background = newConfigBackground(cfg)
	c.Notifier = notify.NewCaptureNotifier(nil, cfg.Notifications, logger)
	c.Pipeline = capture.NewPipeline(capture.Dependencies{
		Viewport:   c.Screen,
		Renderer:   c.Screen,
		Readback:   c.Screen,
		Encoder:    c.Encoder,
		Background: c.Background,
		Region:     c.Published,
		Listener:   c.Notifier,
	}, logger)
	c.Storage = storage.NewStorage(cfg.OutputDir, cfg.SaveCaptures)

	c.Capture = &model.CaptureModel{}
	c.Results = model.NewResultModel()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	c.RegionPresenter = presenter.NewRegionPresenter(c.Region, c.Screen, c.RootView, theme.OverlayStyle(), cfg.ModifierKeys, logger)
	c.Region.SetListener(c.RegionPresenter)
	c.ModePresenter = presenter.NewModePresenter(c.Region, c.RootView)
	c.CapturePresenter = presenter.NewCapturePresenter(ctx, c.Capture, c.Pipeline, c.Results, c.RootView, c.Storage, logger)
	c.StatsPresenter = presenter.NewStatsPresenter(c.Pipeline, c.RootView)
	c.Loop = presenter.NewLoop(c.RegionPresenter, c.ModePresenter, c.CapturePresenter, c.StatsPresenter, nil)
	return c
}

// Tick applies pending window visibility, publishes the region for the
// capture worker and runs one presenter update. It must run on the UI thread.
func (c *AppContainer) Tick() {
	if c.Concealer != nil {
		c.Concealer.Pump()
	}
	c.Published.publish(c.Region.CurrentRegion())
	c.Loop.Tick()
}

// TriggerCapture requests a capture from the UI thread with the region as it
// is right now.
func (c *AppContainer) TriggerCapture() {
	c.Published.publish(c.Region.CurrentRegion())
	c.CapturePresenter.Trigger()
}

// ApplyConfig pushes settings edited at runtime into the running services.
// Region geometry options take effect on the next start.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	c.Background.apply(cfg)
	c.Encoder.SetLevel(capture.ParseCompression(cfg.PNGCompression))
	c.Notifier.SetEnabled(cfg.Notifications)
	c.Storage.Configure(cfg.OutputDir, cfg.SaveCaptures)
	if c.Logger != nil {
		c.Logger.Info("config.applied",
			"transparent", cfg.TransparentBackground,
			"compression", cfg.PNGCompression,
			"save", cfg.SaveCaptures,
			"output_dir", cfg.OutputDir,
		)
	}
}

// Close stops background work.
func (c *AppContainer) Close() {
	c.CapturePresenter.Close()
	c.Screen.Stop()
}
