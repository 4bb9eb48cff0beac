package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Alien-Invaders/internal/config"
	"github.com/Garsondee/Alien-Invaders/internal/tty"
)

func main() {
	cfgPath := flag.String("config", "", "path to a .toml or .yaml config file")
	seed := flag.Int64("seed", 0, "alien fire seed (0 = config value, then time based)")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "invaders-tty.log", "log file (the terminal is busy drawing)")
	flag.Parse()

	cfg, err := config.LoadOrDefaults(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = *logPath
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	err = run(cfg, logger, *mute)
	_ = logger.Sync()
	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, logger *zap.Logger, mute bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	var opts []tty.Option
	if !mute {
		beeper, err := tty.NewBeeper()
		if err != nil {
			// Non-fatal, the game runs without sound.
			logger.Warn("audio unavailable", zap.Error(err))
		} else {
			defer beeper.Close()
			opts = append(opts, tty.WithBeeper(beeper))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := tty.New(screen, cfg, logger, opts...)
	if err := term.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("terminal game failed", zap.Error(err))
		return err
	}
	logger.Info("bye", zap.Int("score", term.Session().Score()))
	return nil
}
