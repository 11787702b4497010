package quantum

import (
	"math"
	"math/rand"
	"testing"

	"qscript/internal/numeric"
)

func magSq(c complex64) float64 {
	r, i := float64(real(c)), float64(imag(c))
	return r*r + i*i
}

func approxEq(a, b complex64, tol float64) bool {
	dr := float64(real(a) - real(b))
	di := float64(imag(a) - imag(b))
	return dr*dr+di*di < tol*tol
}

// TestNormalization checks invariant 1: after any gate other than
// Decoherence/Shift/ExpModN/RevExpModN, sum|v_i|^2 == 1 within tolerance.
func TestNormalization(t *testing.T) {
	v := New(4)
	v.Hadamard(0)
	v.CNot(0, 1)
	v.Rz(2, 0.7)
	v.Toffoli(0, 1, 3)
	if got := v.Norm(); math.Abs(got-1) > 1e-4 {
		t.Errorf("norm = %v, want ~1", got)
	}
}

// TestUnitarity checks invariant 2: applying a gate then its reverse
// restores the vector.
func TestUnitarity(t *testing.T) {
	v := New(5)
	v.Hadamard(0)
	v.Rz(1, 0.2)
	before := v.Clone()

	v.Hadamard(2)
	v.Hadamard(2) // self-inverse
	for i := range v.Amps {
		if !approxEq(v.Amps[i], before.Amps[i], 1e-5) {
			t.Fatalf("Hadamard self-inverse failed at %d: got %v want %v", i, v.Amps[i], before.Amps[i])
		}
	}

	v2 := before.Clone()
	v2.Rx(3, 0.9)
	v2.Rx(3, -0.9)
	for i := range v2.Amps {
		if !approxEq(v2.Amps[i], before.Amps[i], 1e-5) {
			t.Fatalf("Rx(theta) then Rx(-theta) failed at %d: got %v want %v", i, v2.Amps[i], before.Amps[i])
		}
	}

	v3 := before.Clone()
	v3.Phase(0, 1.3)
	v3.Phase(0, -1.3)
	for i := range v3.Amps {
		if !approxEq(v3.Amps[i], before.Amps[i], 1e-5) {
			t.Fatalf("Phase(phi) then Phase(-phi) failed at %d", i)
		}
	}
}

// TestQFTRoundTrip checks invariant 6: InvQFT(o,w); QFT(o,w) is identity.
func TestQFTRoundTrip(t *testing.T) {
	v := New(6)
	v.Hadamard(0)
	v.SigmaX(2)
	before := v.Clone()

	if err := v.InvQFT(0, 6); err != nil {
		t.Fatal(err)
	}
	if err := v.QFT(0, 6); err != nil {
		t.Fatal(err)
	}

	for i := range v.Amps {
		if !approxEq(v.Amps[i], before.Amps[i], 1e-4) {
			t.Fatalf("QFT round trip failed at %d: got %v want %v", i, v.Amps[i], before.Amps[i])
		}
	}
}

// TestMeasurementDistribution checks invariant 7 over a fixed state.
func TestMeasurementDistribution(t *testing.T) {
	v := New(2)
	v.Hadamard(0)
	v.CNot(0, 1)

	rng := rand.New(rand.NewSource(1))
	counts := make(map[int]int)
	const trials = 10000
	for i := 0; i < trials; i++ {
		counts[v.Measure(rng)]++
	}
	if counts[1] != 0 || counts[2] != 0 {
		t.Errorf("outcomes 1 and 2 should never occur, got %d and %d", counts[1], counts[2])
	}
	for _, outcome := range []int{0, 3} {
		if math.Abs(float64(counts[outcome])-5000) > 150 {
			t.Errorf("outcome %d count = %d, want ~5000+-150", outcome, counts[outcome])
		}
	}
}

// TestSingleHadamard is scenario 1.
func TestSingleHadamard(t *testing.T) {
	v := New(2)
	if err := v.Hadamard(0); err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 0, 0.5, 0}
	for i, w := range want {
		if math.Abs(magSq(v.Amps[i])-w) > 1e-6 {
			t.Errorf("amp[%d]^2 = %v, want %v", i, magSq(v.Amps[i]), w)
		}
	}
}

// TestBellPair is scenario 2.
func TestBellPair(t *testing.T) {
	v := New(2)
	v.Hadamard(0)
	v.CNot(0, 1)
	want := []float64{0.5, 0, 0, 0.5}
	for i, w := range want {
		if math.Abs(magSq(v.Amps[i])-w) > 1e-6 {
			t.Errorf("amp[%d]^2 = %v, want %v", i, magSq(v.Amps[i]), w)
		}
	}
}

// TestExpModNShape is scenario 6.
func TestExpModNShape(t *testing.T) {
	v := New(8)
	for i := 0; i < 4; i++ {
		v.Hadamard(i)
	}
	if err := v.ExpModN(7, 15, 4); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 16; i++ {
		idx := i + (numeric.ExpModN(7, i, 15) << 4)
		got := magSq(v.Amps[idx])
		if math.Abs(got-1.0/16) > 1e-4 {
			t.Errorf("amp[%d]^2 = %v, want 1/16", idx, got)
		}
	}
}

// TestApplyPhaseShiftRequiresControlAboveTarget enforces the QFTCPhase
// domain constraint c>t.
func TestApplyPhaseShiftRequiresControlAboveTarget(t *testing.T) {
	v := New(4)
	if err := v.QFTCPhase(1, 2); err == nil {
		t.Error("expected error for c<=t, got nil")
	}
}
