package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	levelName := flag.String("level", "demo.json", "level name in levels/")
	slots := flag.Uint("slots", 256, "uniform slots per buffer")
	align := flag.Uint("align", 256, "minimum dynamic uniform alignment in bytes")
	drop := flag.Bool("drop", false, "drop draws past capacity instead of flushing extra batches")
	watch := flag.Bool("watch", false, "reload prefabs and levels when files change")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("scenecore")

	game, err := NewGame(Config{
		Level:     *levelName,
		Slots:     uint32(*slots),
		Alignment: uint32(*align),
		Drop:      *drop,
		Watch:     *watch,
		Debug:     *debug,
		Logger:    logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
