package engine

import "qscript/internal/compiler"

// dispatchControl executes a classical control-flow opcode, leaving
// CurrentStep pointing at whatever comes next.
func (e *Engine) dispatchControl(cmd compiler.ControlCode, op compiler.Opcode, touch func(string)) {
	switch cmd {
	case compiler.FOR_INIT:
		e.eval(op.Args[0], touch)
		if e.eval(op.Args[1], touch).Truthy() {
			e.CurrentStep += 2 // past FOR_INIT and FOR_LOOP, into the body
		} else {
			e.CurrentStep = op.Target + 1
		}

	case compiler.FOR_LOOP:
		if len(op.Args) == 2 {
			e.eval(op.Args[1], touch) // step, only on the 3-clause form
		}
		if e.eval(op.Args[0], touch).Truthy() {
			e.CurrentStep++
		} else {
			e.CurrentStep = op.Target + 1
		}

	case compiler.FOR_END:
		e.CurrentStep = op.Target

	case compiler.IF:
		if e.eval(op.Args[0], touch).Truthy() {
			if len(op.Args) == 2 {
				e.eval(op.Args[1], touch)
			}
			e.CurrentStep++
		} else {
			e.CurrentStep = op.Target + 1
		}

	case compiler.ELSE:
		e.CurrentStep = op.Target + 1

	case compiler.ENDIF:
		e.CurrentStep++

	case compiler.RETURN:
		e.CurrentStep = len(e.CurrentFunc.Code)

	case compiler.BREAK:
		e.CurrentStep = e.CurrentFunc.Code[op.Target].Target + 1

	case compiler.CONTINUE:
		e.CurrentStep = op.Target + 1 // the FOR_INIT's own FOR_LOOP

	case compiler.EXPRESSION:
		e.eval(op.Args[0], touch)
		e.CurrentStep++
	}
}
