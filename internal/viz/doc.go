// Package viz is the terminal front end.
//
//   - [Model]: Bubble Tea view that steps an arena.World at the scene's
//     frame rate and feeds it mouse and keyboard input
//   - [Canvas]: Braille dot canvas the draw list is rasterised onto
//   - [RunInteractive]: preset picker in front of the live view
//
// Mouse cells map to arena coordinates through the canvas: each cell is
// 2x4 dots and each dot covers width/(cols*2) by height/(rows*4) arena
// units, so a click lands on the ball drawn under it.
//
// # Key Bindings
//
//	Click  - grab a ball, or spawn one on empty space
//	Up/K   - raise elasticity of every ball
//	Down/J - lower elasticity of every ball
//	Space  - pause/resume
//	R      - reset scene
//	T      - cycle themes
//	Q      - quit
package viz
