// Package builtin is the static registry of gate and control builtins:
// their names, arities, the action each performs against the simulator
// or host, and — where the engine's step-back needs it — how to reverse
// that action.
package builtin

import (
	"math/rand"

	"qscript/internal/diag"
	"qscript/internal/expr"
	"qscript/internal/host"
	"qscript/internal/quantum"
)

// Frame is what a builtin's Action needs from the engine: the simulator,
// the host callbacks, a source of randomness, the last measured value,
// and a way to append a non-fatal diagnostic for the step in progress.
type Frame interface {
	Sim() *quantum.Vector
	SetSim(v *quantum.Vector)
	Host() host.Callbacks
	Rand() *rand.Rand
	Measured() int
	SetMeasured(v int)
	Diag(kind diag.Kind, format string, a ...interface{})
}

// Action is the action a builtin performs when called forward.
type Action func(f Frame, args []expr.Value)

// Def is one row of the builtin table.
type Def struct {
	Name string
	// Arity is the number of arguments this builtin expects.
	Arity int
	Action Action
	// StepBack reverses this builtin's effect on the simulator, given
	// the same arguments it was originally called with. nil means the
	// builtin has no reverse at all — step-back skips it silently
	// unless Irreversible is set, in which case it warns instead.
	StepBack     Action
	Irreversible bool
}

func boundsErr(f Frame, err error) {
	if err != nil {
		f.Diag(diag.Bounds, "%v", err)
	}
}

func cplx(r, i expr.Value) complex64 {
	return complex(float32(r.Float()), float32(i.Float()))
}

var (
	defVectorSize = &Def{Name: "VectorSize", Arity: 1, Action: func(f Frame, a []expr.Value) {
		n := a[0].Int()
		if n < 6 || n > 22 || n%2 != 0 {
			f.Diag(diag.Domain, "VectorSize out of range: %d", n)
			return
		}
		f.SetSim(quantum.New(n))
	}}

	defDecoherence = &Def{Name: "Decoherence", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Sim().Decoherence(a[0].Float(), f.Rand())
	}}

	defHadamard = &Def{Name: "Hadamard", Arity: 1, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Hadamard(a[0].Int()))
	}}

	defSigmaX = &Def{Name: "SigmaX", Arity: 1, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().SigmaX(a[0].Int()))
	}}

	defSigmaY = &Def{Name: "SigmaY", Arity: 1, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().SigmaY(a[0].Int()))
	}}

	defSigmaZ = &Def{Name: "SigmaZ", Arity: 1, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().SigmaZ(a[0].Int()))
	}}

	defRx = &Def{Name: "Rx", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Rx(a[0].Int(), a[1].Float()))
	}}

	defRy = &Def{Name: "Ry", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Ry(a[0].Int(), a[1].Float()))
	}}

	defRz = &Def{Name: "Rz", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Rz(a[0].Int(), a[1].Float()))
	}}

	defUnitary = &Def{Name: "Unitary", Arity: 9, Action: func(f Frame, a []expr.Value) {
		u00, u01 := cplx(a[1], a[2]), cplx(a[3], a[4])
		u10, u11 := cplx(a[5], a[6]), cplx(a[7], a[8])
		boundsErr(f, f.Sim().Unitary(a[0].Int(), u00, u01, u10, u11))
	}}

	defCNot = &Def{Name: "CNot", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().CNot(a[0].Int(), a[1].Int()))
	}}

	defSwap = &Def{Name: "Swap", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Swap(a[0].Int(), a[1].Int()))
	}}

	defToffoli = &Def{Name: "Toffoli", Arity: 3, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Toffoli(a[0].Int(), a[1].Int(), a[2].Int()))
	}}

	defPhase = &Def{Name: "Phase", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().Phase(a[0].Int(), a[1].Float()))
	}}

	defCPhase = &Def{Name: "CPhase", Arity: 3, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().CPhase(a[0].Int(), a[1].Int(), a[2].Float()))
	}}

	defQFTCPhase = &Def{Name: "QFTCPhase", Arity: 2, Action: func(f Frame, a []expr.Value) {
		c, t := a[0].Int(), a[1].Int()
		if c <= t {
			f.Diag(diag.Domain, "QFTCPhase requires c>t, got c=%d t=%d", c, t)
			return
		}
		boundsErr(f, f.Sim().QFTCPhase(c, t))
	}}

	defInvQFTCPhase = &Def{Name: "InvQFTCPhase", Arity: 2, Action: func(f Frame, a []expr.Value) {
		c, t := a[0].Int(), a[1].Int()
		if c <= t {
			f.Diag(diag.Domain, "InvQFTCPhase requires c>t, got c=%d t=%d", c, t)
			return
		}
		boundsErr(f, f.Sim().InvQFTCPhase(c, t))
	}}

	defQFT = &Def{Name: "QFT", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().QFT(a[0].Int(), a[1].Int()))
	}}

	defInvQFT = &Def{Name: "InvQFT", Arity: 2, Action: func(f Frame, a []expr.Value) {
		boundsErr(f, f.Sim().InvQFT(a[0].Int(), a[1].Int()))
	}}

	defExpModN = &Def{Name: "ExpModN", Arity: 3, Action: func(f Frame, a []expr.Value) {
		if err := f.Sim().ExpModN(a[0].Int(), a[1].Int(), a[2].Int()); err != nil {
			f.Diag(diag.Domain, "%v", err)
		}
	}}

	defRevExpModN = &Def{Name: "RevExpModN", Arity: 3, Action: func(f Frame, a []expr.Value) {
		if err := f.Sim().RevExpModN(a[0].Int(), a[1].Int(), a[2].Int()); err != nil {
			f.Diag(diag.Domain, "%v", err)
		}
	}}

	defShiftLeft = &Def{Name: "ShiftLeft", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Sim().ShiftLeft(a[0].Int())
	}}

	defShiftRight = &Def{Name: "ShiftRight", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Sim().ShiftRight(a[0].Int())
	}}

	defMeasureBit = &Def{Name: "MeasureBit", Arity: 1, Action: func(f Frame, a []expr.Value) {
		outcome, err := f.Sim().MeasureBit(a[0].Int(), f.Rand())
		if err != nil {
			f.Diag(diag.Bounds, "%v", err)
			return
		}
		f.SetMeasured(outcome)
	}}

	defMeasure = &Def{Name: "Measure", Arity: 0, Irreversible: true, Action: func(f Frame, a []expr.Value) {
		f.SetMeasured(f.Sim().Measure(f.Rand()))
	}}

	defPrint = &Def{Name: "Print", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Host().Print(a[0].String())
	}}

	defBreakpoint = &Def{Name: "Breakpoint", Arity: 0, Action: func(f Frame, a []expr.Value) {
		f.Host().Breakpoint()
	}}

	defDelay = &Def{Name: "Delay", Arity: 1, Action: func(f Frame, a []expr.Value) {
		if err := f.Host().Delay(a[0].Int()); err != nil {
			f.Diag(diag.Domain, "%v", err)
		}
	}}

	defDisplay = &Def{Name: "Display", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Host().Display(a[0].String())
	}}

	defSetViewAngle = &Def{Name: "SetViewAngle", Arity: 1, Action: func(f Frame, a []expr.Value) {
		f.Host().SetViewAngle(a[0].Float())
	}}

	defSetViewMode = &Def{Name: "SetViewMode", Arity: 1, Action: func(f Frame, a []expr.Value) {
		if err := f.Host().SetViewMode(a[0].Int()); err != nil {
			f.Diag(diag.Domain, "%v", err)
		}
	}}
)

// negateArg returns a copy of args with index i negated, for the
// angle-negating reverses (Phase, CPhase, Rx, Ry, Rz).
func negateArg(args []expr.Value, i int) []expr.Value {
	out := make([]expr.Value, len(args))
	copy(out, args)
	out[i] = expr.Number(-out[i].Float())
	return out
}

func init() {
	selfInverse := func(d *Def) { d.StepBack = d.Action }
	selfInverse(defHadamard)
	selfInverse(defSigmaX)
	selfInverse(defSigmaY)
	selfInverse(defSigmaZ)
	selfInverse(defCNot)
	selfInverse(defSwap)
	selfInverse(defToffoli)
	selfInverse(defUnitary)

	defRx.StepBack = func(f Frame, a []expr.Value) { defRx.Action(f, negateArg(a, 1)) }
	defRy.StepBack = func(f Frame, a []expr.Value) { defRy.Action(f, negateArg(a, 1)) }
	defRz.StepBack = func(f Frame, a []expr.Value) { defRz.Action(f, negateArg(a, 1)) }
	defPhase.StepBack = func(f Frame, a []expr.Value) { defPhase.Action(f, negateArg(a, 1)) }
	defCPhase.StepBack = func(f Frame, a []expr.Value) { defCPhase.Action(f, negateArg(a, 2)) }

	defQFTCPhase.StepBack = func(f Frame, a []expr.Value) { defInvQFTCPhase.Action(f, a) }
	defInvQFTCPhase.StepBack = func(f Frame, a []expr.Value) { defQFTCPhase.Action(f, a) }
	defQFT.StepBack = func(f Frame, a []expr.Value) { defInvQFT.Action(f, a) }
	defInvQFT.StepBack = func(f Frame, a []expr.Value) { defQFT.Action(f, a) }
	defShiftLeft.StepBack = func(f Frame, a []expr.Value) { defShiftRight.Action(f, a) }
	defShiftRight.StepBack = func(f Frame, a []expr.Value) { defShiftLeft.Action(f, a) }

	// VectorSize, MeasureBit, ExpModN, RevExpModN: no reverse, skip
	// silently. Measure: irreversible, engine warns instead of skipping.
	// Print/Breakpoint/Delay/Display/SetViewAngle/SetViewMode: no
	// simulator state to roll back.

	for _, d := range Table {
		byName[d.Name] = d
	}
}

// Table lists every builtin in declaration order, matching the registry
// table.
var Table = []*Def{
	defVectorSize, defDecoherence, defHadamard, defSigmaX, defSigmaY, defSigmaZ,
	defRx, defRy, defRz, defUnitary, defCNot, defSwap, defToffoli,
	defPhase, defCPhase, defQFTCPhase, defInvQFTCPhase, defQFT, defInvQFT,
	defExpModN, defRevExpModN, defShiftLeft, defShiftRight,
	defMeasureBit, defMeasure,
	defPrint, defBreakpoint, defDelay, defDisplay, defSetViewAngle, defSetViewMode,
}

var byName = map[string]*Def{}

// Lookup returns the Def registered under name, if any.
func Lookup(name string) (*Def, bool) {
	d, ok := byName[name]
	return d, ok
}
