package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "log FSM transitions")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("sandbox: config")
	}
	if *levelName != "" {
		cfg.Sim.Level = *levelName
	}
	if *debug {
		cfg.Log.Level = "debug"
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	game, err := NewGame(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("sandbox: start")
	}
	defer game.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("patrolai sandbox")
	ebiten.SetTPS(cfg.Sim.TPS)

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("sandbox: run")
	}
}
