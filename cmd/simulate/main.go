package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/patrolai/common"
	"github.com/milk9111/patrolai/config"
	"github.com/milk9111/patrolai/logger"
	"github.com/milk9111/patrolai/player"
	"github.com/milk9111/patrolai/prefabs"
	"github.com/milk9111/patrolai/sfx"
	"github.com/milk9111/patrolai/system"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	levelName := flag.String("level", "", "level to run, overrides sim.level")
	ticks := flag.Int("ticks", -1, "ticks to simulate, overrides sim.ticks")
	seed := flag.Int64("seed", 0, "random seed, overrides sim.seed when non-zero")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *levelName != "" {
		cfg.Sim.Level = *levelName
	}
	if *ticks >= 0 {
		cfg.Sim.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("simulate: failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	prefabs.DiskDir = cfg.Prefabs.Dir

	sound := &sfx.Recorder{}
	world, err := system.NewWorld(cfg.Sim.Level, system.Options{
		Rand:  common.NewRand(cfg.Sim.Seed),
		Sound: sound,
		Log:   logrus.NewEntry(log),
	})
	if err != nil {
		return err
	}
	if world.Player == nil {
		return fmt.Errorf("simulate: level %q has no player", cfg.Sim.Level)
	}

	bot := player.NewBot(common.NewRand(cfg.Sim.Seed + 1))
	stats := world.Run(cfg.Sim.Ticks, cfg.Sim.TPS, bot.Next)
	tick := stats.Ticks

	fields := logrus.Fields{
		"level":         cfg.Sim.Level,
		"ticks":         tick,
		"seconds":       float64(tick) / float64(cfg.Sim.TPS),
		"score":         world.Score.Value,
		"player_health": world.Player.Health.Current,
		"shots":         world.Player.Shots,
		"enemies_left":  len(world.Enemies),
		"died_at":       stats.DiedAt,
	}
	states := world.EnemyStates()
	for state, n := range states {
		fields["state_"+string(state)] = n
	}
	for _, kind := range sfx.Kinds() {
		fields["sound_"+kind.String()] = sound.Count(kind)
	}
	log.WithFields(fields).Info("simulate: done")
	return nil
}
