package expr

import (
	"math"
	"strconv"
	"strings"
)

// Eval evaluates a parsed expression against vars. touch, if non-nil, is
// called once per identifier reference encountered (read or assignment
// target) before its value is consulted — the caller uses this to record
// the variable's pre-step value into the current step's undo slot.
func Eval(e *Expr, vars map[string]Value, touch func(name string)) (Value, error) {
	return evalExpr(e, vars, touch)
}

// EvalTokens parses and evaluates source in one call.
func EvalTokens(source string, vars map[string]Value, touch func(name string)) (Value, error) {
	ast, err := Parse(source)
	if err != nil {
		return Value{}, fault("%v", err)
	}
	return evalExpr(ast, vars, touch)
}

func evalExpr(e *Expr, vars map[string]Value, touch func(string)) (Value, error) {
	return evalAssign(e.Assign, vars, touch)
}

func evalAssign(a *Assign, vars map[string]Value, touch func(string)) (Value, error) {
	if a.Right == nil {
		return evalTernary(a.Left, vars, touch)
	}
	name, ok := identOf(a.Left)
	if !ok {
		return Value{}, fault("invalid assignment target")
	}
	if touch != nil {
		touch(name)
	}
	val, err := evalAssign(a.Right, vars, touch)
	if err != nil {
		return Value{}, err
	}
	vars[name] = val
	return val, nil
}

func evalTernary(t *Ternary, vars map[string]Value, touch func(string)) (Value, error) {
	cond, err := evalOr(t.Cond, vars, touch)
	if err != nil {
		return Value{}, err
	}
	if t.Then == nil {
		return cond, nil
	}
	if cond.Truthy() {
		return evalExpr(t.Then, vars, touch)
	}
	return evalExpr(t.Else, vars, touch)
}

func evalOr(n *LogicalOr, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalAnd(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalAnd(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		left = Bool(left.Truthy() || right.Truthy())
	}
	return left, nil
}

func evalAnd(n *LogicalAnd, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalBitOr(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalBitOr(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		left = Bool(left.Truthy() && right.Truthy())
	}
	return left, nil
}

func evalBitOr(n *BitOr, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalBitXor(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalBitXor(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		left = Number(float64(left.Int() | right.Int()))
	}
	return left, nil
}

func evalBitXor(n *BitXor, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalBitAnd(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalBitAnd(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		left = Number(float64(left.Int() ^ right.Int()))
	}
	return left, nil
}

func evalBitAnd(n *BitAnd, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalEquality(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalEquality(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		left = Number(float64(left.Int() & right.Int()))
	}
	return left, nil
}

func evalEquality(n *Equality, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalRelational(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalRelational(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		eq := valuesEqual(left, right)
		if term.Op == "!=" {
			left = Bool(!eq)
		} else {
			left = Bool(eq)
		}
	}
	return left, nil
}

func evalRelational(n *Relational, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalShift(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalShift(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		a, b := left.Float(), right.Float()
		var res bool
		switch term.Op {
		case "<":
			res = a < b
		case "<=":
			res = a <= b
		case ">":
			res = a > b
		case ">=":
			res = a >= b
		}
		left = Bool(res)
	}
	return left, nil
}

func evalShift(n *Shift, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalAdditive(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalAdditive(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		if term.Op == "<<" {
			left = Number(float64(left.Int() << right.Int()))
		} else {
			left = Number(float64(left.Int() >> right.Int()))
		}
	}
	return left, nil
}

func evalAdditive(n *Additive, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalMultiplicative(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalMultiplicative(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		if term.Op == "+" {
			if left.Kind == KindString || right.Kind == KindString {
				left = Str(left.String() + right.String())
			} else {
				left = Number(left.Float() + right.Float())
			}
		} else {
			left = Number(left.Float() - right.Float())
		}
	}
	return left, nil
}

func evalMultiplicative(n *Multiplicative, vars map[string]Value, touch func(string)) (Value, error) {
	left, err := evalUnary(n.Left, vars, touch)
	if err != nil {
		return Value{}, err
	}
	for _, term := range n.Next {
		right, err := evalUnary(term.Right, vars, touch)
		if err != nil {
			return Value{}, err
		}
		switch term.Op {
		case "*":
			left = Number(left.Float() * right.Float())
		case "/":
			if right.Float() == 0 {
				return Value{}, fault("division by zero")
			}
			left = Number(left.Float() / right.Float())
		case "%":
			if right.Int() == 0 {
				return Value{}, fault("division by zero")
			}
			left = Number(float64(left.Int() % right.Int()))
		}
	}
	return left, nil
}

func evalUnary(n *Unary, vars map[string]Value, touch func(string)) (Value, error) {
	if n.Op == "" {
		return evalPrimary(n.Value, vars, touch)
	}
	v, err := evalUnary(n.Operand, vars, touch)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case "-":
		return Number(-v.Float()), nil
	case "!":
		return Bool(!v.Truthy()), nil
	default: // "+"
		return v, nil
	}
}

func evalPrimary(p *Primary, vars map[string]Value, touch func(string)) (Value, error) {
	switch {
	case p.Float != nil:
		return Number(*p.Float), nil
	case p.Hex != nil:
		n, err := strconv.ParseInt((*p.Hex)[2:], 16, 64)
		if err != nil {
			return Value{}, fault("invalid hex literal %q", *p.Hex)
		}
		return Number(float64(n)), nil
	case p.Octal != nil:
		n, err := strconv.ParseInt(*p.Octal, 8, 64)
		if err != nil {
			return Value{}, fault("invalid octal literal %q", *p.Octal)
		}
		return Number(float64(n)), nil
	case p.Int != nil:
		n, err := strconv.ParseFloat(*p.Int, 64)
		if err != nil {
			return Value{}, fault("invalid integer literal %q", *p.Int)
		}
		return Number(n), nil
	case p.Bool != nil:
		return Bool(*p.Bool == "true"), nil
	case p.String != nil:
		return Str(strings.Trim(*p.String, `"`)), nil
	case p.Ident != nil:
		if touch != nil {
			touch(*p.Ident)
		}
		v, ok := vars[*p.Ident]
		if !ok {
			return Number(0), nil
		}
		return v, nil
	case p.Sub != nil:
		return evalExpr(p.Sub, vars, touch)
	}
	return Value{}, fault("empty expression")
}

func valuesEqual(a, b Value) bool {
	if a.Kind == KindString || b.Kind == KindString {
		return a.String() == b.String()
	}
	if a.Kind == KindBool || b.Kind == KindBool {
		return a.Truthy() == b.Truthy()
	}
	return math.Abs(a.Float()-b.Float()) < 1e-12
}

// identOf reports the bare identifier name a ternary reduces to, if it
// is nothing but a chain of pass-through levels down to Primary.Ident —
// used to validate assignment targets.
func identOf(t *Ternary) (string, bool) {
	if t.Then != nil || len(t.Cond.Next) > 0 {
		return "", false
	}
	and := t.Cond.Left
	if len(and.Next) > 0 {
		return "", false
	}
	bitOr := and.Left
	if len(bitOr.Next) > 0 {
		return "", false
	}
	bitXor := bitOr.Left
	if len(bitXor.Next) > 0 {
		return "", false
	}
	bitAnd := bitXor.Left
	if len(bitAnd.Next) > 0 {
		return "", false
	}
	eq := bitAnd.Left
	if len(eq.Next) > 0 {
		return "", false
	}
	rel := eq.Left
	if len(rel.Next) > 0 {
		return "", false
	}
	sh := rel.Left
	if len(sh.Next) > 0 {
		return "", false
	}
	add := sh.Left
	if len(add.Next) > 0 {
		return "", false
	}
	mul := add.Left
	if len(mul.Next) > 0 {
		return "", false
	}
	u := mul.Left
	if u.Op != "" {
		return "", false
	}
	if u.Value.Ident == nil {
		return "", false
	}
	return *u.Value.Ident, true
}
