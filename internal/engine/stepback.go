package engine

import (
	"qscript/internal/builtin"
	"qscript/internal/diag"
	"qscript/internal/expr"
)

// StepBack undoes the most recent RunStep call: restores position,
// call stack, and every touched variable to their pre-step values,
// then — if that step was a builtin call — applies the builtin's
// reverse to roll back the simulator too.
func (e *Engine) StepBack() {
	if e.IsStart() {
		return
	}
	n := len(e.History)
	rec := e.History[n-1]
	e.History = e.History[:n-1]

	for i, name := range rec.Symbols {
		e.Vars[name] = rec.Values[i]
		if name == measuredValueKey {
			e.MeasuredValue = int(rec.Values[i].Float())
		}
	}
	e.CurrentFunc = rec.Func
	e.CurrentStep = rec.Step
	e.CallStack = rec.CallStack

	if rec.Step >= len(rec.Func.Code) {
		return
	}
	def, ok := rec.Func.Code[rec.Step].Command.(*builtin.Def)
	if !ok {
		return
	}
	switch {
	case def.StepBack != nil:
		args := make([]expr.Value, len(rec.Func.Code[rec.Step].Args))
		for i, toks := range rec.Func.Code[rec.Step].Args {
			args[i] = e.evalIn(rec.Func, toks)
		}
		def.StepBack(e, args)
	case def.Irreversible:
		e.Errors.Add(diag.Warning, rec.Func.Code[rec.Step].Line, "%s is not reversible; simulator state was not rolled back", def.Name)
	}
}
