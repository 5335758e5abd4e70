// Package viz draws the pull switch in a terminal and lets the mouse pull it.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live switch, driven by mouse drags and a frame tick
//   - [Canvas]: Braille-based pixel canvas the rope is drawn on
//   - [Picker]: a small menu for choosing a tuning preset
//
// The page is light while the switch is off and dark while it is on.
//
// # Key Bindings
//
//	Mouse drag - Pull the cord
//	I          - Cycle integrators
//	?          - Show help overlay
//	Q          - Quit
package viz
