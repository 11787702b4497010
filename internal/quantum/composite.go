package quantum

import (
	"fmt"
	"math"
	"math/rand"

	"qscript/internal/numeric"
)

// QFT applies the forward Quantum Fourier Transform to the window of
// width qubits starting at offset.
func (v *Vector) QFT(offset, width int) error {
	if err := v.checkWindow(offset, width); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		if err := v.Hadamard(offset + i); err != nil {
			return err
		}
		for j := i + 1; j < width; j++ {
			if err := v.applyPhaseShift(offset+j, offset+i, -1); err != nil {
				return err
			}
		}
	}
	return nil
}

// InvQFT applies the inverse Quantum Fourier Transform to the same window
// QFT operates on.
func (v *Vector) InvQFT(offset, width int) error {
	if err := v.checkWindow(offset, width); err != nil {
		return err
	}
	for i := width - 1; i >= 0; i-- {
		for j := width - 1; j > i; j-- {
			if err := v.applyPhaseShift(offset+j, offset+i, 1); err != nil {
				return err
			}
		}
		if err := v.Hadamard(offset + i); err != nil {
			return err
		}
	}
	return nil
}

func (v *Vector) checkWindow(offset, width int) error {
	if offset < 0 || width < 0 || offset+width > v.N {
		return fmt.Errorf("qubit number out of range: window [%d,%d)", offset, offset+width)
	}
	return nil
}

// ShiftLeft relabels basis state |k> to |k<<b>, truncated modulo 2^N;
// amplitudes shifted out of range are dropped. Does not preserve norm.
func (v *Vector) ShiftLeft(b int) {
	n := len(v.Amps)
	out := make([]complex64, n)
	for i := 0; i < n; i++ {
		if i&((1<<b)-1) == 0 {
			k := i >> b
			if k < n {
				out[i] = v.Amps[k]
			}
		}
	}
	v.Amps = out
}

// ShiftRight relabels basis state |k> to |k>>b> for every k whose low b
// bits are zero; amplitudes of all other basis states are dropped. Does
// not preserve norm.
func (v *Vector) ShiftRight(b int) {
	n := len(v.Amps)
	out := make([]complex64, n)
	for i := 0; i < n; i++ {
		shifted := i << b
		if shifted < n {
			out[i] = v.Amps[shifted]
		}
	}
	v.Amps = out
}

// ExpModN implements the Shor's-algorithm modular exponentiation unitary:
// from |j>|0> produce |j>|x^j mod N> over a w-bit j register occupying the
// low w bits of the index. Old high-register contents are discarded, as
// the algorithm requires them to be zero on entry.
func (v *Vector) ExpModN(x, modN, w int) error {
	return v.expMod(w, func(j int) int { return numeric.ExpModN(x, j, modN) })
}

// RevExpModN is the asymmetric counterpart of ExpModN: the base varies
// with the register index instead of the exponent, producing |j>|j^x mod N>.
func (v *Vector) RevExpModN(x, modN, w int) error {
	return v.expMod(w, func(j int) int { return numeric.ExpModN(j, x, modN) })
}

func (v *Vector) expMod(w int, f func(j int) int) error {
	lim := 1 << w
	if lim > len(v.Amps) {
		return fmt.Errorf("register width out of range: %d", w)
	}
	out := make([]complex64, len(v.Amps))
	for j := 0; j < lim; j++ {
		idx := (f(j) << w) + j
		if idx >= 0 && idx < len(out) {
			out[idx] = v.Amps[j]
		}
	}
	v.Amps = out
	return nil
}

// Decoherence draws an independent Gaussian phase kick per qubit from
// N(0, sqrt(2*strength)) via the Marsaglia polar method, and applies it
// as a Z-axis rotation on that qubit. Does not preserve norm in
// expectation; a subsequent measurement must renormalize.
func (v *Vector) Decoherence(strength float64, rng *rand.Rand) {
	sigma := math.Sqrt(2 * strength)
	for k := 0; k < v.N; k++ {
		nu := marsagliaPolar(rng) * sigma
		v.Rz(k, nu)
	}
}

// marsagliaPolar draws one standard-normal sample via the Marsaglia
// polar method.
func marsagliaPolar(rng *rand.Rand) float64 {
	for {
		u := 2*rng.Float64() - 1
		w := 2*rng.Float64() - 1
		s := u*u + w*w
		if s > 0 && s < 1 {
			mul := math.Sqrt(-2 * math.Log(s) / s)
			return u * mul
		}
	}
}
