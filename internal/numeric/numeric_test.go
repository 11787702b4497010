package numeric

import "testing"

func TestIPow(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{2, 0, 1}, {2, 10, 1024}, {3, 3, 27}, {0, 5, 0},
	}
	for _, c := range cases {
		if got := IPow(c.a, c.b); got != c.want {
			t.Errorf("IPow(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestGCD(t *testing.T) {
	cases := []struct{ u, v, want int }{
		{12, 8, 4}, {17, 5, 1}, {0, 7, 7}, {21, 14, 7},
	}
	for _, c := range cases {
		if got := GCD(c.u, c.v); got != c.want {
			t.Errorf("GCD(%d,%d) = %d, want %d", c.u, c.v, got, c.want)
		}
	}
}

func TestGetWidth(t *testing.T) {
	cases := []struct{ n, want int }{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {15, 4}, {16, 4}, {17, 5},
	}
	for _, c := range cases {
		if got := GetWidth(c.n); got != c.want {
			t.Errorf("GetWidth(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestInverseMod(t *testing.T) {
	// 7 * i mod 15 == 1 when i == 13 (7*13=91=90+1)
	if got := InverseMod(15, 7); got != 13 {
		t.Errorf("InverseMod(15,7) = %d, want 13", got)
	}
}

func TestExpModN(t *testing.T) {
	cases := []struct{ x, k, n, want int }{
		{7, 4, 15, 1},  // Shor's classic: 7^4 mod 15 = 1
		{2, 10, 1000, 24},
		{5, 0, 7, 1},
	}
	for _, c := range cases {
		if got := ExpModN(c.x, c.k, c.n); got != c.want {
			t.Errorf("ExpModN(%d,%d,%d) = %d, want %d", c.x, c.k, c.n, got, c.want)
		}
	}
}

func TestFracApprox(t *testing.T) {
	// 1/3 should be recovered exactly with enough width.
	p, q := FracApprox(1, 3, 8)
	if float64(p)/float64(q) < 0.333 || float64(p)/float64(q) > 0.334 {
		t.Errorf("FracApprox(1,3,8) = %d/%d, want ~1/3", p, q)
	}
}
