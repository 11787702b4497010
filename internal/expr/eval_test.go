package expr

import "testing"

func evalStr(t *testing.T, src string, vars map[string]Value) Value {
	t.Helper()
	v, err := EvalTokens(src, vars, nil)
	if err != nil {
		t.Fatalf("EvalTokens(%q) error: %v", src, err)
	}
	return v
}

func TestLiterals(t *testing.T) {
	vars := map[string]Value{}
	cases := map[string]float64{
		"3+4*2":    11,
		"(3+4)*2":  14,
		"0x1F":     31,
		"017":      15,
		"2.5e1":    25,
		"10%3":     1,
		"1<<4":     16,
		"256>>4":   16,
		"5&3":      1,
		"5|2":      7,
		"5^1":      4,
	}
	for src, want := range cases {
		got := evalStr(t, src, vars)
		if got.Float() != want {
			t.Errorf("%q = %v, want %v", src, got.Float(), want)
		}
	}
}

func TestComparisonAndLogic(t *testing.T) {
	vars := map[string]Value{}
	cases := map[string]bool{
		"3<4":         true,
		"3<=3":        true,
		"4>5":         false,
		"3==3":        true,
		"3!=4":        true,
		"true&&false": false,
		"true||false": true,
		"!true":       false,
	}
	for src, want := range cases {
		got := evalStr(t, src, vars)
		if got.Truthy() != want {
			t.Errorf("%q = %v, want %v", src, got.Truthy(), want)
		}
	}
}

func TestTernary(t *testing.T) {
	vars := map[string]Value{}
	if got := evalStr(t, "1<2?10:20", vars); got.Float() != 10 {
		t.Errorf("ternary true branch = %v, want 10", got.Float())
	}
	if got := evalStr(t, "1>2?10:20", vars); got.Float() != 20 {
		t.Errorf("ternary false branch = %v, want 20", got.Float())
	}
}

func TestAssignment(t *testing.T) {
	vars := map[string]Value{}
	got := evalStr(t, "x=5", vars)
	if got.Float() != 5 {
		t.Errorf("assignment result = %v, want 5", got.Float())
	}
	if vars["x"].Float() != 5 {
		t.Errorf("x in env = %v, want 5", vars["x"].Float())
	}
}

func TestUndefinedIdentifierReadsZero(t *testing.T) {
	vars := map[string]Value{}
	got := evalStr(t, "undeclared+1", vars)
	if got.Float() != 1 {
		t.Errorf("undeclared+1 = %v, want 1", got.Float())
	}
}

func TestStringConcatenation(t *testing.T) {
	vars := map[string]Value{}
	got := evalStr(t, `"a"+"b"`, vars)
	if got.String() != "ab" {
		t.Errorf(`"a"+"b" = %q, want "ab"`, got.String())
	}
}

func TestDivisionByZeroFaults(t *testing.T) {
	vars := map[string]Value{}
	_, err := EvalTokens("1/0", vars, nil)
	if err == nil {
		t.Fatal("expected a fault for division by zero")
	}
	if _, ok := err.(*FaultError); !ok {
		t.Fatalf("expected *FaultError, got %T", err)
	}
}

func TestTouchCallback(t *testing.T) {
	vars := map[string]Value{"a": Number(1)}
	var touched []string
	_, err := EvalTokens("a=a+1", vars, func(name string) { touched = append(touched, name) })
	if err != nil {
		t.Fatal(err)
	}
	if len(touched) != 2 || touched[0] != "a" || touched[1] != "a" {
		t.Errorf("touched = %v, want [a a]", touched)
	}
}
