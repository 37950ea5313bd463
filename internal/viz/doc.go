// Package viz is the terminal host for a running simulation, built on
// Bubble Tea.
//
//   - [Model]: live top-down view that steps the simulation every frame
//   - [Picker]: preset menu that starts a [Model]
//   - [Canvas]: braille pixel canvas with per-cell color
//
// # Key Bindings
//
//	Space - Pause/Resume
//	M     - Switch between gravity and springs
//	Arrows- Steer the craft
//	+/-   - Zoom
//	T     - Tilt the view
//	F     - Follow the next catalog body
//	Q     - Quit
package viz
