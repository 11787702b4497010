package compiler

import (
	"testing"

	"qscript/internal/builtin"
)

func findChild(f *Func, name string) *Func {
	return f.Children[name]
}

func TestSimpleBuiltinCalls(t *testing.T) {
	p := Compile("VectorSize 6\nHadamard 0\nCNot 0 1\n")
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	if len(p.Main.Code) != 3 {
		t.Fatalf("got %d opcodes, want 3", len(p.Main.Code))
	}
	want := []string{"VectorSize", "Hadamard", "CNot"}
	for i, w := range want {
		def, ok := p.Main.Code[i].Command.(*builtin.Def)
		if !ok || def.Name != w {
			t.Errorf("opcode %d command = %v, want builtin %s", i, p.Main.Code[i].Command, w)
		}
	}
}

func TestWrongArityReportsSyntaxError(t *testing.T) {
	p := Compile("Hadamard 0 1\n")
	if !p.Errors.HasFatal() {
		t.Fatal("expected a fatal syntax error for wrong arity")
	}
}

func TestForLoopFixup(t *testing.T) {
	src := "for i=0;i<3;i=i+1\nHadamard i\nendfor\n"
	p := Compile(src)
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	// FOR_INIT, FOR_LOOP, Hadamard, FOR_END
	if len(p.Main.Code) != 4 {
		t.Fatalf("got %d opcodes, want 4", len(p.Main.Code))
	}
	forInit := p.Main.Code[0]
	forLoop := p.Main.Code[1]
	forEnd := p.Main.Code[3]
	if forInit.Command != FOR_INIT || forLoop.Command != FOR_LOOP {
		t.Fatalf("unexpected opcodes: %v %v", forInit.Command, forLoop.Command)
	}
	if forInit.Target != 3 || forLoop.Target != 3 {
		t.Errorf("FOR_INIT/FOR_LOOP target = %d/%d, want 3 (FOR_END index)", forInit.Target, forLoop.Target)
	}
	if forEnd.Target != 1 {
		t.Errorf("FOR_END target = %d, want 1 (FOR_LOOP index)", forEnd.Target)
	}
}

func TestBreakTargetsEnclosingForInit(t *testing.T) {
	src := "for i=0;i<3\nif i==1\nbreak\nendif\nendfor\n"
	p := Compile(src)
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	var brk Opcode
	for _, op := range p.Main.Code {
		if op.Command == BREAK {
			brk = op
		}
	}
	if brk.Command != BREAK {
		t.Fatal("no BREAK opcode found")
	}
	if p.Main.Code[brk.Target].Command != FOR_INIT {
		t.Errorf("BREAK target %d is not the enclosing FOR_INIT", brk.Target)
	}
}

func TestIfElseFixup(t *testing.T) {
	src := "if 1<2\nHadamard 0\nelse\nSigmaX 0\nendif\n"
	p := Compile(src)
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	// IF, Hadamard, ELSE, SigmaX, ENDIF
	if len(p.Main.Code) != 5 {
		t.Fatalf("got %d opcodes, want 5", len(p.Main.Code))
	}
	ifOp, elseOp, endif := p.Main.Code[0], p.Main.Code[2], p.Main.Code[4]
	if ifOp.Command != IF || elseOp.Command != ELSE || endif.Command != ENDIF {
		t.Fatalf("unexpected shape: %v %v %v", ifOp.Command, elseOp.Command, endif.Command)
	}
	if ifOp.Target != 2 {
		t.Errorf("IF.Target = %d, want 2 (ELSE index)", ifOp.Target)
	}
	if elseOp.Target != 4 {
		t.Errorf("ELSE.Target = %d, want 4 (ENDIF index)", elseOp.Target)
	}
}

func TestProcDeclarationAndCall(t *testing.T) {
	src := "proc bell a\nHadamard a\nCNot a 1\nendproc\nbell 0\n"
	p := Compile(src)
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	child := findChild(p.Main, "bell")
	if child == nil {
		t.Fatal("proc bell not registered under __main__")
	}
	if len(child.Code) != 2 {
		t.Fatalf("bell has %d opcodes, want 2", len(child.Code))
	}
	if len(p.Main.Code) != 1 {
		t.Fatalf("__main__ has %d opcodes, want 1 (the call)", len(p.Main.Code))
	}
	call, ok := p.Main.Code[0].Command.(*Func)
	if !ok || call.Name != "bell" {
		t.Fatalf("expected a call to bell, got %v", p.Main.Code[0].Command)
	}
}

func TestUnknownCommandIsSyntaxError(t *testing.T) {
	p := Compile("Frobnicate 0\n")
	if !p.Errors.HasFatal() {
		t.Fatal("expected a syntax error for an unresolved call")
	}
}

func TestExpressionStatement(t *testing.T) {
	p := Compile("x=5\ny=x+1\n")
	if p.Errors.HasFatal() {
		t.Fatalf("unexpected errors: %v", p.Errors)
	}
	if len(p.Main.Code) != 2 {
		t.Fatalf("got %d opcodes, want 2", len(p.Main.Code))
	}
	for _, op := range p.Main.Code {
		if op.Command != EXPRESSION {
			t.Errorf("opcode command = %v, want EXPRESSION", op.Command)
		}
	}
}

func TestScopedNameGlobalPrefix(t *testing.T) {
	main := newFunc(0, "__main__", nil, nil)
	if got := ScopedName(main, "_shots"); got != "___shots" {
		t.Errorf("ScopedName(_shots) = %q, want %q", got, "___shots")
	}
}

func TestScopedNameLocalVsAncestor(t *testing.T) {
	main := newFunc(0, "__main__", nil, nil)
	main.Locals["n"] = true
	child := newFunc(1, "f", main, nil)

	if got := ScopedName(child, "n"); got != main.scopedLocal("n") {
		t.Errorf("ScopedName(n) in child = %q, want ancestor's scoped name %q", got, main.scopedLocal("n"))
	}
	if got := ScopedName(child, "m"); got != child.scopedLocal("m") {
		t.Errorf("ScopedName(m) in child = %q, want child's own scoped name %q", got, child.scopedLocal("m"))
	}
	if !child.Locals["m"] {
		t.Error("first use of m in child should declare it as a child local")
	}
}
