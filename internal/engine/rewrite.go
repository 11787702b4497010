package engine

import (
	"strconv"
	"strings"

	"qscript/internal/compiler"
	"qscript/internal/diag"
	"qscript/internal/expr"
	"qscript/internal/lexer"
)

// rewrite renders a token run into source text internal/expr can
// parse: every ID token becomes its scoped runtime name (per
// compiler.ScopedName, walking f's lexical scope chain and declaring
// a new local of f on first reference), except the boolean literals
// and measured_value, which resolve to literals directly.
func (e *Engine) rewrite(f *compiler.Func, toks []lexer.Token, touch func(string)) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		if t.Kind != lexer.ID {
			b.WriteString(t.Body)
			continue
		}
		switch t.Body {
		case "true", "false":
			b.WriteString(t.Body)
		case "measured_value":
			if touch != nil {
				touch(measuredValueKey)
			}
			b.WriteString(strconv.Itoa(e.MeasuredValue))
		default:
			b.WriteString(compiler.ScopedName(f, t.Body))
		}
	}
	return b.String()
}

// eval rewrites and evaluates one token run against the current
// function's scope, appending a Fault diagnostic (and returning the
// zero Value) on evaluation failure — per the error-handling policy,
// a fault never aborts the step.
func (e *Engine) eval(toks []lexer.Token, touch func(string)) expr.Value {
	src := e.rewrite(e.CurrentFunc, toks, touch)
	v, err := expr.EvalTokens(src, e.Vars, touch)
	if err != nil {
		e.Diag(diag.Fault, "%v", err)
		return expr.Value{}
	}
	return v
}

// evalIn is like eval but rewrites against an explicit scope (used by
// StepBack to re-derive a builtin's original arguments after the call
// that used them has already been unwound back to its caller).
func (e *Engine) evalIn(f *compiler.Func, toks []lexer.Token) expr.Value {
	src := e.rewrite(f, toks, nil)
	v, err := expr.EvalTokens(src, e.Vars, nil)
	if err != nil {
		return expr.Value{}
	}
	return v
}
