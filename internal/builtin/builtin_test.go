package builtin

import (
	"math/rand"
	"testing"

	"qscript/internal/diag"
	"qscript/internal/expr"
	"qscript/internal/host"
	"qscript/internal/quantum"
)

type fakeFrame struct {
	sim      *quantum.Vector
	h        host.Callbacks
	rng      *rand.Rand
	measured int
	diags    []diag.Diagnostic
}

func newFakeFrame(n int) *fakeFrame {
	return &fakeFrame{sim: quantum.New(n), h: host.Nop{}, rng: rand.New(rand.NewSource(1))}
}

func (f *fakeFrame) Sim() *quantum.Vector        { return f.sim }
func (f *fakeFrame) SetSim(v *quantum.Vector)    { f.sim = v }
func (f *fakeFrame) Host() host.Callbacks        { return f.h }
func (f *fakeFrame) Rand() *rand.Rand            { return f.rng }
func (f *fakeFrame) Measured() int               { return f.measured }
func (f *fakeFrame) SetMeasured(v int)           { f.measured = v }
func (f *fakeFrame) Diag(k diag.Kind, format string, a ...interface{}) {
	f.diags = append(f.diags, diag.Diagnostic{Kind: k, Message: format})
}

func TestTableLengthAndLookup(t *testing.T) {
	if len(Table) != 31 {
		t.Fatalf("Table has %d builtins, want 31", len(Table))
	}
	for _, d := range Table {
		if _, ok := Lookup(d.Name); !ok {
			t.Errorf("Lookup(%q) missing", d.Name)
		}
	}
}

func TestHadamardSelfInverse(t *testing.T) {
	f := newFakeFrame(2)
	d, _ := Lookup("Hadamard")
	args := []expr.Value{expr.Number(0)}
	d.Action(f, args)
	d.StepBack(f, args)
	if d := f.sim.Amps[0] - 1; real(d)*real(d)+imag(d)*imag(d) > 1e-10 {
		t.Errorf("Hadamard then StepBack did not restore |0>, got %v", f.sim.Amps)
	}
}

func TestRzStepBackNegatesTheta(t *testing.T) {
	f := newFakeFrame(1)
	d, _ := Lookup("Rz")
	args := []expr.Value{expr.Number(0), expr.Number(0.3)}
	d.Action(f, args)
	d.StepBack(f, args)
	if r := real(f.sim.Amps[0]); r < 0.999 {
		t.Errorf("Rz then StepBack(-theta) did not restore phase, amp=%v", f.sim.Amps[0])
	}
}

func TestQFTCPhaseDomainError(t *testing.T) {
	f := newFakeFrame(4)
	d, _ := Lookup("QFTCPhase")
	d.Action(f, []expr.Value{expr.Number(1), expr.Number(2)})
	if len(f.diags) != 1 || f.diags[0].Kind != diag.Domain {
		t.Fatalf("expected one Domain diagnostic, got %v", f.diags)
	}
}

func TestVectorSizeOutOfRange(t *testing.T) {
	f := newFakeFrame(4)
	d, _ := Lookup("VectorSize")
	d.Action(f, []expr.Value{expr.Number(3)})
	if len(f.diags) != 1 || f.diags[0].Kind != diag.Domain {
		t.Fatalf("expected Domain diagnostic for odd VectorSize, got %v", f.diags)
	}
}
