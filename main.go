package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/aurifex/aurifex/pkg/config"
	"github.com/aurifex/aurifex/pkg/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logging.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logging.Sync()

	app := NewApp(cfg)

	err = wails.Run(&options.App{
		Title:  "Aurifex",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logging.Sugar.Fatalw("application exited with error", "error", err)
	}
}
