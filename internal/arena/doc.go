// Package arena implements the ball physics core: bodies bouncing inside a
// bounded screen with interior walls, friction, restitution, pointer dragging
// and pairwise collision response.
//
// The package is frame-synchronous. One call to [World.Step] is one frame:
//
//   - pending input events drive each body's drag state and spawning
//   - free bodies integrate, dragged bodies snap to the pointer
//   - [ResolveBoundaries] applies interior walls, then the screen edges
//   - [SwapThenDamp] resolves every overlapping pair once
//
// Velocities are in pixels per frame. There is no delta-time normalisation,
// so the simulation speed is tied to the caller's frame rate.
//
// # Example
//
//	w := arena.NewWorld(arena.Options{Width: 800, Height: 600}, rand.New(rand.NewSource(1)))
//	w.AddBody(arena.NewBody(arena.Vec2{X: 400, Y: 300}, 0.9, colorful.Color{R: 1}))
//	rep := w.Step(arena.Frame{Pointer: pointer, Events: events})
//	for _, cmd := range w.Draw() {
//	    ...
//	}
//
// # Thread Safety
//
// World is NOT safe for concurrent use. Every front end owns its world and
// steps it from a single goroutine.
package arena
