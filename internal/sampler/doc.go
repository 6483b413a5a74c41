// Package sampler owns the sample-compute-render cycle.
//
// A Sampler holds exactly two snapshots of the host counters, "previous"
// and "current". Each Tick reads a fresh current snapshot, runs the delta
// engine over the pair, hands back a Frame for a renderer, and rotates
// current into previous. Snapshots are never modified once built; rotation
// replaces the pointer.
//
// # States
//
//	StateInit        - core count and baselines not yet taken
//	StateRunning     - Tick produces frames
//	StateTerminating - Stop was called; buffers released
//
// Init fails, and the sampler stays in StateInit, when the present-cores or
// stat source cannot be read. Once running, a failed read only degrades the
// matching Frame field; Tick itself does not fail.
//
// # Loop
//
// Loop is a cooperative single-threaded scheduler for plain (non-TUI) mode:
// check for cancellation, poll the keyboard with a short timeout, tick,
// render, then wait out the rest of the period. The Bubble Tea dashboard in
// internal/monitor drives the same Sampler from its own tick messages.
package sampler
