package engine

import (
	"fmt"
	"sort"

	"qscript/internal/compiler"
	"qscript/internal/expr"
)

// Local is one (name, value) pair for a function's declared locals,
// as shown by a debugger-style locals view.
type Local struct {
	Name  string
	Value expr.Value
}

// GetCurrentCallStack renders the suspended callers plus the active
// function as display strings, outermost first.
func (e *Engine) GetCurrentCallStack() []string {
	out := make([]string, 0, len(e.CallStack)+1)
	for _, fr := range e.CallStack {
		line := 0
		if fr.ReturnStep > 0 && fr.ReturnStep-1 < len(fr.Func.Code) {
			line = fr.Func.Code[fr.ReturnStep-1].Line
		}
		out = append(out, fmt.Sprintf("%s:%d", fr.Func.Name, line))
	}
	out = append(out, fmt.Sprintf("%s:%d", e.CurrentFunc.Name, e.GetCurrentLine()))
	return out
}

// GetCurrentLocals lists the active function's declared locals and
// their current values, sorted by name.
func (e *Engine) GetCurrentLocals() []Local {
	return localsOf(e.CurrentFunc, e.Vars)
}

func localsOf(f *compiler.Func, vars map[string]expr.Value) []Local {
	names := make([]string, 0, len(f.Locals))
	for n := range f.Locals {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Local, 0, len(names))
	for _, n := range names {
		out = append(out, Local{Name: n, Value: vars[compiler.ScopedName(f, n)]})
	}
	return out
}
