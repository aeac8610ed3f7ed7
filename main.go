package main

import (
	"flag"

	"github.com/soocke/region-capture/app"
	"github.com/soocke/region-capture/config"
	"github.com/soocke/region-capture/hotkey"
)

func main() {
	cfgPath := flag.String("config", "region-capture.json", "path to the JSON config file")
	debugFlag := flag.Bool("debug", false, "enable debug logging and runtime stats")
	flag.Parse()

	logger := NewLogger(*debugFlag)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if cfg.Debug && !*debugFlag {
		logger = NewLogger(true)
	}

	registerHotkey := func(combo string, fn func()) (func(), error) {
		g, err := hotkey.Register(combo, fn, logger)
		if err != nil {
			return nil, err
		}
		return g.Close, nil
	}
	application := app.NewApp("Region Capture", cfg, *cfgPath, logger, registerHotkey)
	application.Start()
}
