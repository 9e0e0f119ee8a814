// Package viz is the terminal frontend for the gravity simulation.
//
// The package implements a Bubble Tea program:
//
//   - [Model]: steps the simulation on a 60 Hz tick and renders it
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//
// Bodies are positioned in a virtual viewport (the window size from the
// configuration) and scaled onto the canvas, so wall reflections happen
// at the same coordinates as in the windowed frontend.
//
// # Key Bindings
//
//	Up/K    - Raise gravity on the next tick
//	Down/J  - Lower gravity on the next tick
//	Space   - Pause/Resume simulation
//	R       - Reset to the spawned population
//	Esc     - Stop after the current tick
//	Q       - Quit immediately
package viz
