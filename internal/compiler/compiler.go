package compiler

import (
	"strings"

	"qscript/internal/diag"
	"qscript/internal/lexer"
)

// Program is a fully compiled script: its __main__ function plus any
// diagnostics raised along the way. Errors.HasFatal reports whether
// compilation failed outright.
type Program struct {
	Main   *Func
	Errors diag.Errors
}

type compiler struct {
	lines  []string
	errs   diag.Errors
	nextID int
}

// Compile lexes and compiles an entire QScript source file into a
// Program rooted at __main__.
func Compile(source string) *Program {
	c := &compiler{lines: strings.Split(source, "\n"), nextID: 1}
	main := newFunc(0, "__main__", nil, nil)
	c.compileBody(main, 0)
	return &Program{Main: main, Errors: c.errs}
}

// compileBody compiles f's statement list starting at line index
// start, returning the index of the line following its terminator
// (endproc, or len(lines) for __main__).
func (c *compiler) compileBody(f *Func, start int) int {
	forStack := []int{}
	ifStack := []int{}
	i := start
	for i < len(c.lines) {
		lineNo := i + 1
		raw := c.lines[i]
		i++
		line := strings.TrimSpace(lexer.StripComment(raw))
		if line == "" {
			continue
		}
		toks := lexer.Lex(line, lineNo)
		if len(toks) == 0 {
			continue
		}
		unterminated := false
		for _, t := range toks {
			if t.Kind == lexer.EXPRESSION && strings.HasPrefix(t.Body, `"`) &&
				(len(t.Body) < 2 || !strings.HasSuffix(t.Body, `"`)) {
				unterminated = true
			}
		}
		if unterminated {
			c.errs.Add(diag.Syntax, lineNo, "Syntax error in line %d", lineNo)
			continue
		}
		if toks[0].Kind != lexer.ID {
			c.errs.Add(diag.Syntax, lineNo, "Unknown command in line %d", lineNo)
			continue
		}

		switch toks[0].Body {
		case "endproc":
			if f.Parent == nil {
				c.errs.Add(diag.Syntax, lineNo, "endproc without matching proc in line %d", lineNo)
				continue
			}
			return i
		case "endfor":
			c.compileEndFor(f, &forStack, lineNo)
			continue
		case "else":
			c.compileElse(f, &ifStack, lineNo)
			continue
		case "endif":
			c.compileEndIf(f, &ifStack, lineNo)
			continue
		case "break":
			c.compileBreakContinue(f, forStack, BREAK, lineNo)
			continue
		case "continue":
			c.compileBreakContinue(f, forStack, CONTINUE, lineNo)
			continue
		case "return":
			f.Code = append(f.Code, Opcode{Command: RETURN, Line: lineNo, Target: -1})
			continue
		case "for":
			c.compileFor(f, toks[1:], lineNo, &forStack)
			continue
		case "if":
			c.compileIf(f, toks[1:], lineNo, &ifStack)
			continue
		case "proc":
			i = c.compileProc(f, toks[1:], lineNo, i)
			continue
		}

		c.compileCallOrExpr(f, toks, lineNo)
	}

	if f.Parent != nil {
		c.errs.Add(diag.Syntax, len(c.lines), "proc %s missing endproc", f.Name)
	}
	if len(forStack) > 0 {
		c.errs.Add(diag.Syntax, len(c.lines), "for missing endfor")
	}
	if len(ifStack) > 0 {
		c.errs.Add(diag.Syntax, len(c.lines), "if missing endif")
	}
	return i
}

func (c *compiler) compileProc(f *Func, rest []lexer.Token, lineNo, bodyStart int) int {
	if len(rest) == 0 {
		c.errs.Add(diag.Syntax, lineNo, "proc without a name in line %d", lineNo)
		return bodyStart
	}
	name := rest[0].Body
	var params []string
	for _, t := range rest[1:] {
		if t.Kind == lexer.SEPARATOR {
			continue
		}
		params = append(params, t.Body)
	}
	id := c.nextID
	c.nextID++
	child := newFunc(id, name, f, params)
	f.Children[name] = child
	return c.compileBody(child, bodyStart)
}

func (c *compiler) compileFor(f *Func, rest []lexer.Token, lineNo int, forStack *[]int) {
	clauses := ParseExpressions(rest)
	if len(clauses) < 2 || len(clauses) > 3 {
		c.errs.Add(diag.Syntax, lineNo, "for requires init;cond[;step] in line %d", lineNo)
		return
	}
	idx := len(f.Code)
	f.Code = append(f.Code, Opcode{Command: FOR_INIT, Args: clauses[:2], Line: lineNo, Target: -1})
	loopArgs := [][]lexer.Token{clauses[1]}
	if len(clauses) == 3 {
		loopArgs = append(loopArgs, clauses[2])
	}
	f.Code = append(f.Code, Opcode{Command: FOR_LOOP, Args: loopArgs, Line: lineNo, Target: -1})
	*forStack = append(*forStack, idx)
}

func (c *compiler) compileEndFor(f *Func, forStack *[]int, lineNo int) {
	n := len(*forStack)
	if n == 0 {
		c.errs.Add(diag.Syntax, lineNo, "endfor without matching for in line %d", lineNo)
		return
	}
	forInitIdx := (*forStack)[n-1]
	*forStack = (*forStack)[:n-1]
	forLoopIdx := forInitIdx + 1
	endIdx := len(f.Code)
	f.Code[forInitIdx].Target = endIdx
	f.Code[forLoopIdx].Target = endIdx
	f.Code = append(f.Code, Opcode{Command: FOR_END, Line: lineNo, Target: forLoopIdx})
}

func (c *compiler) compileBreakContinue(f *Func, forStack []int, cc ControlCode, lineNo int) {
	if len(forStack) == 0 {
		c.errs.Add(diag.Syntax, lineNo, "break/continue outside for in line %d", lineNo)
		return
	}
	f.Code = append(f.Code, Opcode{Command: cc, Line: lineNo, Target: forStack[len(forStack)-1]})
}

func (c *compiler) compileIf(f *Func, rest []lexer.Token, lineNo int, ifStack *[]int) {
	clauses := ParseExpressions(rest)
	if len(clauses) < 1 || len(clauses) > 2 {
		c.errs.Add(diag.Syntax, lineNo, "if requires a condition in line %d", lineNo)
		return
	}
	idx := len(f.Code)
	f.Code = append(f.Code, Opcode{Command: IF, Args: clauses, Line: lineNo, Target: -1})
	*ifStack = append(*ifStack, idx)
}

func (c *compiler) compileElse(f *Func, ifStack *[]int, lineNo int) {
	n := len(*ifStack)
	if n == 0 {
		c.errs.Add(diag.Syntax, lineNo, "else without matching if in line %d", lineNo)
		return
	}
	idx := (*ifStack)[n-1]
	*ifStack = (*ifStack)[:n-1]
	elseIdx := len(f.Code)
	f.Code[idx].Target = elseIdx
	f.Code = append(f.Code, Opcode{Command: ELSE, Line: lineNo, Target: -1})
	*ifStack = append(*ifStack, elseIdx)
}

func (c *compiler) compileEndIf(f *Func, ifStack *[]int, lineNo int) {
	n := len(*ifStack)
	if n == 0 {
		c.errs.Add(diag.Syntax, lineNo, "endif without matching if in line %d", lineNo)
		return
	}
	idx := (*ifStack)[n-1]
	*ifStack = (*ifStack)[:n-1]
	endIdx := len(f.Code)
	f.Code[idx].Target = endIdx
	f.Code = append(f.Code, Opcode{Command: ENDIF, Line: lineNo, Target: -1})
}

// compileCallOrExpr handles the remaining line shapes: a builtin call,
// a bare classical expression (assignment or arithmetic with a
// discarded result), or a user-proc call — tried in that order, per
// the dispatch rule.
func (c *compiler) compileCallOrExpr(f *Func, toks []lexer.Token, lineNo int) {
	name := toks[0].Body
	rest := toks[1:]

	if def, ok := builtinLookup(name); ok {
		args := callArgs(rest)
		if len(args) != def.Arity {
			c.errs.Add(diag.Syntax, lineNo, "Wrong number of arguments in line %d", lineNo)
			return
		}
		f.Code = append(f.Code, Opcode{Command: def, Args: args, Line: lineNo, Target: -1})
		return
	}

	if len(rest) > 0 && startsWithOperator(rest[0].Body) {
		f.Code = append(f.Code, Opcode{Command: EXPRESSION, Args: [][]lexer.Token{toks}, Line: lineNo, Target: -1})
		return
	}

	callee := resolveProc(f, name)
	if callee == nil {
		c.errs.Add(diag.Syntax, lineNo, "Unknown command in line %d", lineNo)
		return
	}
	args := callArgs(rest)
	if len(args) != len(callee.Params) {
		c.errs.Add(diag.Syntax, lineNo, "Wrong number of arguments in line %d", lineNo)
		return
	}
	f.Code = append(f.Code, Opcode{Command: callee, Args: args, Line: lineNo, Target: -1})
}

// resolveProc walks f's lexical scope chain looking for a proc
// declared under that name, mirroring how ScopedName resolves a
// variable — a proc may call itself or any proc visible to an
// ancestor, but not a sibling declared later in the same scope.
func resolveProc(f *Func, name string) *Func {
	for cur := f; cur != nil; cur = cur.Parent {
		if child, ok := cur.Children[name]; ok {
			return child
		}
	}
	return nil
}

func startsWithOperator(body string) bool {
	if body == "" {
		return false
	}
	switch body[0] {
	case '=', '+', '-', '*', '/', '%', '&', '|', '^', '!', '<', '>', '(':
		return true
	}
	return false
}
