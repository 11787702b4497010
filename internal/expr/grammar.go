package expr

import (
	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes a classical expression. Longer operator spellings
// are listed before shorter ones within the Op rule so that, e.g., "<="
// lexes as one token rather than "<" followed by "=".
var exprLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Float", Pattern: `[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?|[0-9]+[eE][+-]?[0-9]+`},
	{Name: "Octal", Pattern: `0[0-7]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `&&|\|\||==|!=|<=|>=|<<|>>|[-+*/%&|^!<>=?:()]`},
})

// Expr is the grammar's entry point: an assignment, which falls through
// to a ternary when there is no "=".
type Expr struct {
	Assign *Assign `@@`
}

// Assign is right-associative so "a = b = 5" parses as "a = (b = 5)".
type Assign struct {
	Left  *Ternary `@@`
	Right *Assign  `( "=" @@ )?`
}

// Ternary is "cond ? then : else", falling through to LogicalOr when no
// "?" follows.
type Ternary struct {
	Cond *LogicalOr `@@`
	Then *Expr      `( "?" @@ ":"`
	Else *Expr      `  @@ )?`
}

type OrTerm struct {
	Op    string      `@"||"`
	Right *LogicalAnd `@@`
}

type LogicalOr struct {
	Left *LogicalAnd `@@`
	Next []*OrTerm   `@@*`
}

type AndTerm struct {
	Op    string `@"&&"`
	Right *BitOr `@@`
}

type LogicalAnd struct {
	Left *BitOr    `@@`
	Next []*AndTerm `@@*`
}

type BitOrTerm struct {
	Op    string  `@"|"`
	Right *BitXor `@@`
}

type BitOr struct {
	Left *BitXor      `@@`
	Next []*BitOrTerm `@@*`
}

type BitXorTerm struct {
	Op    string  `@"^"`
	Right *BitAnd `@@`
}

type BitXor struct {
	Left *BitAnd       `@@`
	Next []*BitXorTerm `@@*`
}

type BitAndTerm struct {
	Op    string    `@"&"`
	Right *Equality `@@`
}

type BitAnd struct {
	Left *Equality     `@@`
	Next []*BitAndTerm `@@*`
}

type EqualityTerm struct {
	Op    string      `@("==" | "!=")`
	Right *Relational `@@`
}

type Equality struct {
	Left *Relational     `@@`
	Next []*EqualityTerm `@@*`
}

type RelationalTerm struct {
	Op    string `@("<=" | ">=" | "<" | ">")`
	Right *Shift `@@`
}

type Relational struct {
	Left *Shift            `@@`
	Next []*RelationalTerm `@@*`
}

type ShiftTerm struct {
	Op    string      `@("<<" | ">>")`
	Right *Additive   `@@`
}

type Shift struct {
	Left *Additive    `@@`
	Next []*ShiftTerm `@@*`
}

type AdditiveTerm struct {
	Op    string          `@("+" | "-")`
	Right *Multiplicative `@@`
}

type Additive struct {
	Left *Multiplicative `@@`
	Next []*AdditiveTerm `@@*`
}

type MultiplicativeTerm struct {
	Op    string `@("*" | "/" | "%")`
	Right *Unary `@@`
}

type Multiplicative struct {
	Left *Unary                `@@`
	Next []*MultiplicativeTerm `@@*`
}

// Unary is a prefix +, -, or ! applied to another unary, falling through
// to Primary.
type Unary struct {
	Op      string   `(  @("+" | "-" | "!")`
	Operand *Unary   `   @@ )`
	Value   *Primary `| @@`
}

// Primary is a literal, identifier, or parenthesized sub-expression.
type Primary struct {
	Float  *float64 `  @Float`
	Hex    *string  `| @Hex`
	Octal  *string  `| @Octal`
	Int    *string  `| @Int`
	Bool   *string  `| @("true" | "false")`
	String *string  `| @String`
	Ident  *string  `| @Ident`
	Sub    *Expr    `| "(" @@ ")"`
}

var exprParser = participle.MustBuild[Expr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a classical expression from already-scoped source text.
func Parse(source string) (*Expr, error) {
	return exprParser.ParseString("", source)
}
