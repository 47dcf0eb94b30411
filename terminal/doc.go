// @focus: #sys { term }
// Package terminal wraps a tcell screen with the small surface the viewer needs.
//
// Features:
//   - Raw mode and hidden cursor between Init and Fini
//   - Cell writes in top-left origin coordinates, dropped outside the grid
//   - Non-blocking event polling, one event per call
//   - Monochrome fallback when the environment reports no color support
//   - Best-effort restoration from panic handlers via EmergencyReset
//
// Tests drive the same code through tcell's simulation screen.
package terminal
