// Package anim tracks which frame of a sprite-sheet animation should be
// shown at a given elapsed time.
//
// A Grid cuts a sheet into equally sized cells and hands out Frames for
// compact selectors such as ("1-3", 1). An Animation pairs those frames
// with per-frame durations, advances with Update(dt) and loops by
// default. Drawing is delegated to a caller-supplied Drawer, so the
// package has no dependency on any graphics library.
//
//	g, _ := anim.NewGrid(32, 32, 384, 256)
//	walk, _ := anim.NewAnimation(g.MustFrames("1-3", 1, 2, 1), anim.Uniform(150*time.Millisecond))
//	walk.Update(dt)
//	walk.Draw(drawer, x, y)
package anim
