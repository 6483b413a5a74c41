// Package monitor implements the full-screen dashboard for local host
// resource usage.
//
// The package uses the Bubble Tea framework (Model-Update-View):
//
//   - Model: the last Frame, host details, pause and help state
//   - Update: keystrokes, tick timers and newly sampled frames
//   - View: renders the current state to a string for display
//
// # Message Flow
//
//  1. Init runs sampleCmd, which calls Sampler.Tick off the UI goroutine
//  2. frameMsg arrives with the Frame and a latency summary
//  3. the next tickMsg is scheduled for the rest of the period
//  4. tickMsg runs sampleCmd again unless the dashboard is paused
//
// Only one of tick timer or sample is outstanding at any time, so the
// Sampler is never used concurrently.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	p           - Pause / resume sampling
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
