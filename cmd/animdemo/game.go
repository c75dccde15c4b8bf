package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/anim8/common"
	"github.com/milk9111/anim8/prefabs"
	"github.com/milk9111/anim8/render"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	screenWidth  = 800
	screenHeight = 600

	witchSheet    = "witch"
	fightersSheet = "fighters"
	walkSpeed     = 100.0 // pixels per second
)

type direction string

const (
	dirDown  direction = "down"
	dirUp    direction = "up"
	dirLeft  direction = "left"
	dirRight direction = "right"
)

type Game struct {
	scale   float64
	speed   float64
	elapsed time.Duration

	lib     *render.AnimationLibrary
	watcher *prefabs.Watcher
	face    ebtext.Face

	witchX, witchY float64
	facing         direction
	paused         bool
}

func NewGame(scale, speed float64) (*Game, error) {
	if scale <= 0 {
		scale = 1
	}
	if speed <= 0 {
		speed = 1
	}
	g := &Game{
		scale:  scale,
		speed:  speed,
		lib:    render.NewAnimationLibrary(),
		face:   ebtext.NewGoXFace(basicfont.Face7x13),
		witchX: screenWidth/2 - 16*scale,
		witchY: screenHeight/2 - 16*scale,
		facing: dirDown,
	}
	names, err := prefabs.SheetNames()
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if err := g.loadSheet(name); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Game) loadSheet(name string) error {
	spec, err := prefabs.LoadSheetSpec(name)
	if err != nil {
		return err
	}
	sheet, err := spec.Build()
	if err != nil {
		return err
	}
	// Drop the cached image so an edited sheet is decoded again.
	render.ForgetImage(sheet.Image)
	g.lib.RegisterSheet(sheet)
	return nil
}

// Watch reloads sheets whenever their spec (or any loop script) changes.
func (g *Game) Watch(dirs ...string) error {
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	dt := time.Duration(float64(time.Second) / float64(ebiten.TPS()) * g.speed)
	g.elapsed += dt

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		for _, key := range g.lib.Keys() {
			clip, _ := g.lib.Get(key)
			if clip.Sheet != fightersSheet {
				continue
			}
			if g.paused {
				clip.Anim.Pause()
			} else {
				clip.Anim.Resume()
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.loadSheet(fightersSheet); err != nil {
			log.Printf("reload %s: %v", fightersSheet, err)
		}
		g.paused = false
	}

	g.lib.UpdateSheet(fightersSheet, dt)

	facing, moving := directionFor(
		ebiten.IsKeyPressed(ebiten.KeyUp),
		ebiten.IsKeyPressed(ebiten.KeyDown),
		ebiten.IsKeyPressed(ebiten.KeyLeft),
		ebiten.IsKeyPressed(ebiten.KeyRight),
		g.facing,
	)
	g.facing = facing
	if moving {
		if clip, ok := g.lib.Get(render.ClipKey(witchSheet, string(g.facing))); ok {
			clip.Anim.Update(dt)
		}
		step := walkSpeed * dt.Seconds()
		switch g.facing {
		case dirDown:
			g.witchY += step
		case dirUp:
			g.witchY -= step
		case dirLeft:
			g.witchX -= step
		case dirRight:
			g.witchX += step
		}
	}
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	names, err := prefabs.SheetNames()
	if err != nil {
		log.Printf("reload: %v", err)
		return
	}
	if strings.EqualFold(filepath.Ext(path), ".yaml") || strings.EqualFold(filepath.Ext(path), ".yml") {
		names = []string{filepath.Base(path)}
	}
	for _, name := range names {
		if err := g.loadSheet(name); err != nil {
			log.Printf("reload %s: %v", name, err)
			continue
		}
		log.Printf("reloaded %s", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	cell := 24 * g.scale
	row := 0
	for _, key := range g.lib.Keys() {
		clip, _ := g.lib.Get(key)
		if clip.Sheet != fightersSheet {
			continue
		}
		x := 20 + float64(row)*(cell+40)
		y := 60.0
		if clip.Name == "plane" {
			y = common.EaseBetween(50, 70, g.elapsed.Seconds(), 2)
		}
		if err := g.lib.Draw(screen, key, x, y, g.scale); err != nil {
			log.Printf("draw %s: %v", key, err)
		}
		g.label(screen, clip.Name, x, y+cell+4)
		g.label(screen, fmt.Sprintf("%d/%d", clip.Anim.Position()+1, clip.Anim.Len()), x, y+cell+18)
		row++
	}

	if err := g.lib.Draw(screen, render.ClipKey(witchSheet, string(g.facing)), g.witchX, g.witchY, g.scale); err != nil {
		log.Printf("draw witch: %v", err)
	}

	g.label(screen, "arrows: walk   space: pause   r: restart", 20, screenHeight-40)
	g.label(screen, fmt.Sprintf("TPS: %.1f", ebiten.ActualTPS()), 20, screenHeight-24)
}

func (g *Game) label(screen *ebiten.Image, msg string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, msg, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// directionFor picks the walking direction from the arrow keys. Later keys
// win when several are held, and the last direction is kept when idle.
func directionFor(up, down, left, right bool, last direction) (direction, bool) {
	dir, moving := last, false
	if up {
		dir, moving = dirUp, true
	}
	if down {
		dir, moving = dirDown, true
	}
	if left {
		dir, moving = dirLeft, true
	}
	if right {
		dir, moving = dirRight, true
	}
	return dir, moving
}
