package main

import (
	"flag"
	"log"
	"os"

	"TradeLens/internal/di"
	"TradeLens/pkg/config"

	"github.com/shopspring/decimal"
)

func main() {
	configPath := flag.String("config", "", "config file path (defaults only when empty)")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Money fields go out as JSON numbers, matching what the frontend expects.
	decimal.MarshalJSONWithoutQuotes = true

	log.Printf("env=%s backend=%s prefs=%s cache=%s", cfg.Environment, cfg.Backend.BaseURL, cfg.Preferences.Driver, cfg.Cache.Driver)

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		cleanup()
		os.Exit(1)
	}
	cleanup()
}
