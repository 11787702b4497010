package quantum

import (
	"fmt"
	"math"
)

// Unitary applies an arbitrary 2x2 complex unitary, given as the row-major
// matrix [u00 u01; u10 u11], to qubit b.
func (v *Vector) Unitary(b int, u00, u01, u10, u11 complex64) error {
	if err := v.checkBit(b); err != nil {
		return err
	}
	mask := 1 << b
	for i := 0; i < len(v.Amps); i++ {
		if i&mask == 0 {
			j := i | mask
			a0, a1 := v.Amps[i], v.Amps[j]
			v.Amps[i] = u00*a0 + u01*a1
			v.Amps[j] = u10*a0 + u11*a1
		}
	}
	return nil
}

// Hadamard applies H = (1/sqrt(2)) [[1,1],[1,-1]] to qubit b.
func (v *Vector) Hadamard(b int) error {
	h := complex(float32(1/math.Sqrt2), 0)
	return v.Unitary(b, h, h, h, -h)
}

// SigmaX is the Pauli X gate: swap the amplitude pair.
func (v *Vector) SigmaX(b int) error {
	if err := v.checkBit(b); err != nil {
		return err
	}
	mask := 1 << b
	for i := 0; i < len(v.Amps); i++ {
		if i&mask == 0 {
			j := i | mask
			v.Amps[i], v.Amps[j] = v.Amps[j], v.Amps[i]
		}
	}
	return nil
}

// SigmaY is the Pauli Y gate.
func (v *Vector) SigmaY(b int) error {
	if err := v.checkBit(b); err != nil {
		return err
	}
	mask := 1 << b
	for i := 0; i < len(v.Amps); i++ {
		if i&mask == 0 {
			j := i | mask
			a0, a1 := v.Amps[i], v.Amps[j]
			v.Amps[i] = complex(0, 1) * a1
			v.Amps[j] = complex(0, -1) * a0
		}
	}
	return nil
}

// SigmaZ is the Pauli Z gate: negate the |1> amplitude.
func (v *Vector) SigmaZ(b int) error {
	if err := v.checkBit(b); err != nil {
		return err
	}
	mask := 1 << b
	for i := 0; i < len(v.Amps); i++ {
		if i&mask != 0 {
			v.Amps[i] = -v.Amps[i]
		}
	}
	return nil
}

// Rx applies rotation by theta about X: [[cos, -i sin],[-i sin, cos]]
// (half angles), the standard textbook sign convention.
func (v *Vector) Rx(b int, theta float64) error {
	c := complex(float32(math.Cos(theta/2)), 0)
	s := complex(0, float32(-math.Sin(theta/2)))
	return v.Unitary(b, c, s, s, c)
}

// Ry applies rotation by theta about Y: [[cos, sin],[-sin, cos]].
func (v *Vector) Ry(b int, theta float64) error {
	c := complex(float32(math.Cos(theta/2)), 0)
	s := complex(float32(math.Sin(theta/2)), 0)
	return v.Unitary(b, c, s, -s, c)
}

// Rz applies a diagonal rotation by theta about Z.
func (v *Vector) Rz(b int, theta float64) error {
	if err := v.checkBit(b); err != nil {
		return err
	}
	mask := 1 << b
	p0 := complex(float32(math.Cos(theta/2)), float32(math.Sin(theta/2)))
	p1 := complex(float32(math.Cos(theta/2)), float32(-math.Sin(theta/2)))
	for i := 0; i < len(v.Amps); i++ {
		if i&mask == 0 {
			v.Amps[i] *= p0
		} else {
			v.Amps[i] *= p1
		}
	}
	return nil
}

// CNot is the controlled-X gate: Toffoli with the control used twice.
func (v *Vector) CNot(c, t int) error {
	return v.Toffoli(c, c, t)
}

// Toffoli flips bit t of every basis state where both control bits are set.
func (v *Vector) Toffoli(c1, c2, t int) error {
	if err := v.checkBits(c1, c2, t); err != nil {
		return err
	}
	cMask1, cMask2, tMask := 1<<c1, 1<<c2, 1<<t
	for i := 0; i < len(v.Amps); i++ {
		if i&cMask1 != 0 && i&cMask2 != 0 && i&tMask == 0 {
			j := i | tMask
			v.Amps[i], v.Amps[j] = v.Amps[j], v.Amps[i]
		}
	}
	return nil
}

// Swap exchanges qubits a and b.
func (v *Vector) Swap(a, b int) error {
	if err := v.checkBits(a, b); err != nil {
		return err
	}
	maskA, maskB := 1<<a, 1<<b
	for i := 0; i < len(v.Amps); i++ {
		bitA, bitB := i&maskA != 0, i&maskB != 0
		if bitA != bitB && bitA {
			j := (i &^ maskA) | maskB
			v.Amps[i], v.Amps[j] = v.Amps[j], v.Amps[i]
		}
	}
	return nil
}

// CPhase multiplies the amplitude of every basis state with both bits c
// and t set by e^{i*phi}.
func (v *Vector) CPhase(c, t int, phi float64) error {
	if err := v.checkBits(c, t); err != nil {
		return err
	}
	cMask, tMask := 1<<c, 1<<t
	factor := complex(float32(math.Cos(phi)), float32(math.Sin(phi)))
	for i := 0; i < len(v.Amps); i++ {
		if i&cMask != 0 && i&tMask != 0 {
			v.Amps[i] *= factor
		}
	}
	return nil
}

// Phase applies a diagonal phase e^{i*phi} to qubit b: CPhase(b, b, phi).
func (v *Vector) Phase(b int, phi float64) error {
	return v.CPhase(b, b, phi)
}

// applyPhaseShift implements the QFT twiddle factor phi = sgn*pi/2^(c-t),
// then CPhase(c,t,phi). Requires c>t.
func (v *Vector) applyPhaseShift(c, t int, sgn float64) error {
	if c <= t {
		return fmt.Errorf("QFT phase shift requires control > target, got c=%d t=%d", c, t)
	}
	phi := sgn * math.Pi / float64(int(1)<<(c-t))
	return v.CPhase(c, t, phi)
}

// QFTCPhase is applyPhaseShift(c,t,+1); requires c>t.
func (v *Vector) QFTCPhase(c, t int) error { return v.applyPhaseShift(c, t, 1) }

// InvQFTCPhase is applyPhaseShift(c,t,-1); requires c>t.
func (v *Vector) InvQFTCPhase(c, t int) error { return v.applyPhaseShift(c, t, -1) }
