// Package viz renders Lorenz trajectories in the terminal.
//
//   - [Canvas]: braille dot canvas
//   - [Camera]: perspective projection of phase space, fitted to the attractor
//   - [Player]: Bubble Tea model that replays a precomputed trajectory
//
// # Key Bindings
//
//	Space   - Play/Pause
//	R       - Restart from the first sample
//	←→↑↓    - Rotate the camera
//	+/-     - Zoom
//	[ ]     - Seek backward/forward
//	T       - Cycle color themes
//	Q       - Quit
package viz
