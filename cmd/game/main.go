package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
	"github.com/Garsondee/Alien-Invaders/internal/game"
)

func main() {
	cfgPath := flag.String("config", "", "path to a .toml or .yaml config file")
	seed := flag.Int64("seed", 0, "alien fire seed (0 = config value, then time based)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	cfg, err := config.LoadOrDefaults(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	g := game.New(cfg, logger, game.WithSound(!*mute))
	ebiten.SetWindowTitle("Alien Invaders")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
