// Package engine steps a compiled program forward and backward: opcode
// dispatch, the call stack, the undo history, and the scope-rewriting
// bridge into internal/expr. It implements internal/builtin.Frame so
// builtin actions can reach the simulator, host, and diagnostics
// without internal/builtin ever importing this package.
package engine

import (
	"math/rand"

	"qscript/internal/builtin"
	"qscript/internal/compiler"
	"qscript/internal/diag"
	"qscript/internal/expr"
	"qscript/internal/host"
	"qscript/internal/quantum"
)

// frame is a suspended caller: where to resume once the callee returns.
type frame struct {
	Func       *compiler.Func
	ReturnStep int
}

// stepData is one undo record: the position and call stack the step
// started from, plus every scoped variable it touched and that
// variable's value immediately before the step ran.
type stepData struct {
	Func      *compiler.Func
	Step      int
	CallStack []frame
	Symbols   []string
	Values    []expr.Value
}

// measuredValueKey is the reserved Vars slot measured_value mirrors
// into, so it can ride the ordinary undo-record machinery.
const measuredValueKey = "__measured_value"

// Engine runs one compiled Program. Vars is the flat scoped-name
// environment internal/expr evaluates against; Sim is the simulator
// every gate builtin acts on.
type Engine struct {
	Program *compiler.Program

	CurrentFunc *compiler.Func
	CurrentStep int
	CallStack   []frame
	History     []stepData

	Vars          map[string]expr.Value
	MeasuredValue int
	sim           *quantum.Vector
	RNG           *rand.Rand
	HostCB        host.Callbacks
	Errors        diag.Errors
}

// New creates an Engine ready to run p from __main__'s first opcode.
// host may be nil, in which case host.Nop{} is used.
func New(p *compiler.Program, h host.Callbacks) *Engine {
	if h == nil {
		h = host.Nop{}
	}
	return &Engine{
		Program:     p,
		CurrentFunc: p.Main,
		Vars:        make(map[string]expr.Value),
		sim:         quantum.New(6),
		RNG:         rand.New(rand.NewSource(1)),
		HostCB:      h,
	}
}

// Frame implementation, for internal/builtin.

func (e *Engine) Sim() *quantum.Vector { return e.sim }

func (e *Engine) SetSim(v *quantum.Vector) { e.sim = v }

func (e *Engine) Host() host.Callbacks { return e.HostCB }

func (e *Engine) Rand() *rand.Rand { return e.RNG }

func (e *Engine) Measured() int { return e.MeasuredValue }

func (e *Engine) SetMeasured(v int) {
	e.MeasuredValue = v
	e.Vars[measuredValueKey] = expr.Number(float64(v))
}

func (e *Engine) Diag(kind diag.Kind, format string, a ...interface{}) {
	e.Errors.Add(kind, e.GetCurrentLine(), format, a...)
}

// IsDone reports whether execution has run past the end of __main__
// with nothing left on the call stack.
func (e *Engine) IsDone() bool {
	return len(e.CallStack) == 0 && e.CurrentStep >= len(e.CurrentFunc.Code)
}

// IsStart reports whether no forward step has executed yet.
func (e *Engine) IsStart() bool { return len(e.History) == 0 }

// RunStep executes exactly one forward step: either a frame pop (if
// execution had already run past the current function's end) or the
// dispatch of code[CurrentStep]. A single stepData record is always
// pushed, so StepBack always undoes exactly one RunStep call.
func (e *Engine) RunStep() {
	if e.IsDone() {
		return
	}

	rec := &stepData{
		Func:      e.CurrentFunc,
		Step:      e.CurrentStep,
		CallStack: append([]frame(nil), e.CallStack...),
	}
	touched := make(map[string]bool)
	touch := func(name string) {
		if touched[name] {
			return
		}
		touched[name] = true
		rec.Symbols = append(rec.Symbols, name)
		rec.Values = append(rec.Values, e.Vars[name])
	}

	if e.CurrentStep >= len(e.CurrentFunc.Code) {
		e.popFrame()
		e.History = append(e.History, *rec)
		return
	}

	op := e.CurrentFunc.Code[e.CurrentStep]
	switch cmd := op.Command.(type) {
	case compiler.ControlCode:
		e.dispatchControl(cmd, op, touch)
	case *builtin.Def:
		e.dispatchBuiltin(cmd, op, touch)
		e.CurrentStep++
	case *compiler.Func:
		e.dispatchCall(cmd, op, touch)
	}

	if e.CurrentStep >= len(e.CurrentFunc.Code) {
		e.popFrame()
	}
	e.History = append(e.History, *rec)
}

func (e *Engine) popFrame() {
	n := len(e.CallStack)
	if n == 0 {
		return
	}
	fr := e.CallStack[n-1]
	e.CallStack = e.CallStack[:n-1]
	e.CurrentFunc = fr.Func
	e.CurrentStep = fr.ReturnStep
}

func (e *Engine) dispatchBuiltin(def *builtin.Def, op compiler.Opcode, touch func(string)) {
	args := make([]expr.Value, len(op.Args))
	for i, toks := range op.Args {
		args[i] = e.eval(toks, touch)
	}
	if def.Name == "MeasureBit" || def.Name == "Measure" {
		touch(measuredValueKey)
	}
	def.Action(e, args)
}

// dispatchCall binds each argument into the callee's scoped parameter
// slot via "<param>=(<arg>)", evaluated in the caller's scope, then
// pushes a return frame and enters the callee at its first opcode.
func (e *Engine) dispatchCall(callee *compiler.Func, op compiler.Opcode, touch func(string)) {
	for i, toks := range op.Args {
		if i >= len(callee.Params) {
			break
		}
		paramName := compiler.ScopedName(callee, callee.Params[i])
		argSrc := e.rewrite(e.CurrentFunc, toks, touch)
		src := paramName + "=(" + argSrc + ")"
		if _, err := expr.EvalTokens(src, e.Vars, touch); err != nil {
			e.Diag(diag.Fault, "%v", err)
		}
	}
	e.CallStack = append(e.CallStack, frame{Func: e.CurrentFunc, ReturnStep: e.CurrentStep + 1})
	e.CurrentFunc = callee
	e.CurrentStep = 0
}

// GetCurrentLine returns the source line of the current opcode, or
// the function's last line once execution has run past its end.
func (e *Engine) GetCurrentLine() int {
	if e.CurrentStep < len(e.CurrentFunc.Code) {
		return e.CurrentFunc.Code[e.CurrentStep].Line
	}
	if n := len(e.CurrentFunc.Code); n > 0 {
		return e.CurrentFunc.Code[n-1].Line
	}
	return 0
}
