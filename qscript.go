// Package qscript is the public surface of the QScript compiler and
// execution engine: compile a script to a Program, then drive it forward
// and backward one opcode at a time through an Engine.
package qscript

import (
	"qscript/internal/compiler"
	"qscript/internal/engine"
)

// Program is a compiled script, ready to run. Errors holds any
// compile-time diagnostics; a Program with a fatal (Syntax) diagnostic
// should not be run.
type Program = compiler.Program

// Compile lexes and compiles source into a Program rooted at __main__.
// Compile errors are non-panicking: check Program.Errors.HasFatal()
// before running.
func Compile(source string) *Program {
	return compiler.Compile(source)
}

// Engine steps a Program forward (RunStep) and backward (StepBack), and
// exposes the debugger surface (call stack, locals, current line) a
// host uses to drive or inspect a run in progress.
type Engine = engine.Engine

// NewEngine creates an Engine positioned at p's first opcode. host may
// be nil, in which case a NopHost is used.
func NewEngine(p *Program, host HostCallbacks) *Engine {
	return engine.New(p, host)
}

// RunLoop drives an Engine forward in timed batches, for a host that
// isn't single-stepping by hand.
type RunLoop = engine.RunLoop

// NewRunLoop returns a RunLoop over e with the default cadence.
func NewRunLoop(e *Engine) *RunLoop {
	return engine.NewRunLoop(e)
}
