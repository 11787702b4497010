// Package host defines the collaborator boundary between the engine and
// whatever renders or drives it: console output, pacing, and the
// visualization hints the (out-of-scope) front-end consumes.
package host

// Callbacks is the set of actions a builtin invokes on the host rather
// than on the simulator. A CLI driver implements it trivially; a browser
// host would wire it to the WebGL viewer this module does not implement.
type Callbacks interface {
	// Print appends s to the host's console.
	Print(s string)
	// Breakpoint notifies the host that a Breakpoint builtin fired; the
	// engine itself never stops the run loop, it only reports position
	// for the host to act on.
	Breakpoint()
	// Delay sets the run loop's inter-tick pause, in milliseconds.
	// ms must be in [1, 10000]; out-of-range values are a domain error.
	Delay(ms int) error
	// Display shows a raw HTML overlay string. Sanitization, if any, is
	// the host's responsibility.
	Display(html string)
	// SetViewAngle sets the visualization's rotation about Z, in radians.
	SetViewAngle(radians float64)
	// SetViewMode selects 0 (2D amplitude), 1 (2D phase), or 2 (3D).
	SetViewMode(mode int) error
}

// Nop is a Callbacks that discards everything; useful for tests and for
// embedding when only the classical/quantum semantics matter.
type Nop struct{}

func (Nop) Print(string)          {}
func (Nop) Breakpoint()           {}
func (Nop) Delay(int) error       { return nil }
func (Nop) Display(string)        {}
func (Nop) SetViewAngle(float64)  {}
func (Nop) SetViewMode(int) error { return nil }
