// Package main is the entry point for the fog cube scene.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/fogcubes/internal/config"
	"github.com/Faultbox/fogcubes/internal/game"
	"github.com/Faultbox/fogcubes/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", config.UserConfigPath())
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Fog Cubes ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	code := game.RunApplication(cfg)
	logger.Sync()
	os.Exit(code)
}
