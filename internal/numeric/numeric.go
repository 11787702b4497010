// Package numeric implements the small set of integer/float helpers the
// compiler and quantum simulator share: exponentiation, gcd, bit width,
// modular inverse/exponentiation, and continued-fraction approximation.
package numeric

import "math"

// IPow returns a^b for a non-negative integer exponent b, computed by
// repeated multiplication (b is expected to stay small: qubit counts,
// register widths).
func IPow(a, b int) int {
	result := 1
	for i := 0; i < b; i++ {
		result *= a
	}
	return result
}

// GCD returns the greatest common divisor of u and v via Euclid's algorithm.
func GCD(u, v int) int {
	for v != 0 {
		u, v = v, u%v
	}
	if u < 0 {
		return -u
	}
	return u
}

// GetWidth returns the smallest i such that 2^i >= n.
func GetWidth(n int) int {
	width := 0
	for IPow(2, width) < n {
		width++
	}
	return width
}

// InverseMod returns the smallest positive i such that (i*c) mod n == 1.
// Callers guarantee such an i exists (c and n coprime).
func InverseMod(n, c int) int {
	for i := 1; i < n; i++ {
		if (i*c)%n == 1 {
			return i
		}
	}
	return 1
}

// ExpModN computes x^k mod N via right-to-left binary exponentiation.
func ExpModN(x, k, n int) int {
	if n <= 1 {
		return 0
	}
	result := 1
	base := x % n
	if base < 0 {
		base += n
	}
	for k > 0 {
		if k&1 == 1 {
			result = (result * base) % n
		}
		base = (base * base) % n
		k >>= 1
	}
	return result
}

// FracApprox finds the best rational p/q approximating a/b with q <= 2^width,
// via the continued-fraction expansion. It stops early once the remaining
// error is within 1/2^(width+1), and guards the floor step with a small
// epsilon to avoid continued-fraction blow-up near integer boundaries.
func FracApprox(a, b, width int) (p, q int) {
	const epsilon = 5e-6
	maxQ := IPow(2, width)
	tolerance := 1.0 / float64(IPow(2, width+1))

	x := float64(a) / float64(b)

	var h0, h1, k0, k1 = 0, 1, 1, 0
	val := x

	for {
		fl := math.Floor(val + epsilon)
		a_i := int(fl)

		h2 := a_i*h1 + h0
		k2 := a_i*k1 + k0

		if k2 > maxQ {
			break
		}

		h0, h1 = h1, h2
		k0, k1 = k1, k2

		if k1 == 0 {
			break
		}
		approx := float64(h1) / float64(k1)
		if math.Abs(approx-x) < tolerance {
			break
		}

		frac := val - fl
		if frac < epsilon {
			break
		}
		val = 1.0 / frac
	}

	if k1 == 0 {
		return 0, 1
	}
	return h1, k1
}
