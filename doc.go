// Package fireworks is a frame-driven fireworks simulation for [Ebitengine]
// and the terminal.
//
// A [Firework] launches a charge that rises toward a blast point, covering a
// fixed fraction of the remaining distance every tick. When the charge comes
// within [BlastTolerance] of the target on both axes it detonates once,
// spawning [FireworkConfig.BlastPower] particles. Each [Particle] travels in a
// straight line, shrinks, and is removed when its life runs out.
//
// # Quick start
//
//	canvas := fireworks.NewCanvas(330, 430)
//	scene := fireworks.NewScene(canvas, 330, 430)
//	scene.AddFirework(fireworks.FireworkConfig{
//		LaunchPoint: fireworks.Vec2{X: 165, Y: 430},
//		BlastPoint:  fireworks.Vec2{X: 165, Y: 115},
//		BlastPower:  100,
//		Colors:      fireworks.DefaultPalette,
//	})
//	fireworks.Run(scene, canvas, fireworks.RunConfig{Title: "Fireworks", Loop: true})
//
// Shows can also be described in YAML and loaded with [LoadShowFile]; see
// [ShowConfig].
//
// # Surfaces and frame clocks
//
// Everything paints through the four primitives of [Surface]. [Canvas] is
// the ebiten implementation driven by [Run]; package termsurface renders
// the same scenes in a terminal with tcell.
//
// Per-frame operations never fail. Binding to an absent surface or drawing
// without one is reported on the package logger (see [SetLogOutput]) and
// the entity simply paints nothing.
//
// [Ebitengine]: https://ebitengine.org
package fireworks
