package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	scale := flag.Float64("scale", 2, "pixel scale for sprites")
	speed := flag.Float64("speed", 1, "playback speed multiplier")
	watch := flag.Bool("watch", false, "reload sheet specs from prefabs/ when they change on disk")
	flag.Parse()

	game, err := NewGame(*scale, *speed)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		if err := game.Watch("prefabs", "prefabs/scripts"); err != nil {
			log.Printf("watch disabled: %v", err)
		}
	}
	defer game.Close()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("anim8 demo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
