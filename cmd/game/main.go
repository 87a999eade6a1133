package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/tilefall/tilefall/internal/app"
	"github.com/tilefall/tilefall/internal/game"
)

func main() {
	var configPath string
	var seed int64
	var verbose bool

	flag.StringVar(&configPath, "config", "config.json", "path to the game constants file")
	flag.Int64Var(&seed, "seed", 0, "RNG seed (0 = time-based)")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if !verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg, err := game.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("load config")
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := app.New(cfg, seed, log)
	ebiten.SetWindowTitle("Tilefall")
	ebiten.SetWindowSize(a.ScreenSize())
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
