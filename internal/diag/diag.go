// Package diag defines the non-fatal diagnostic record shared by the
// compiler and execution engine, per the error-handling policy: nothing
// in this module aborts on its own account, it appends a Diagnostic and
// keeps going.
package diag

import "fmt"

// Kind classifies a Diagnostic by the policy that governs it: lexical and
// parse errors block execution once compilation finishes, everything else
// is a non-fatal, per-step annotation.
type Kind int

const (
	Syntax  Kind = iota // lexical/parse error, blocks execution
	Bounds              // runtime qubit-range error, gate skipped
	Domain              // argument-domain error (VectorSize, Delay, ...)
	Fault               // expression-evaluator fault
	Warning             // step-back warning (non-reversible gate)
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Bounds:
		return "bounds"
	case Domain:
		return "domain"
	case Fault:
		return "fault"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Fatal reports whether a diagnostic of this kind should prevent the
// program from being run at all.
func (k Kind) Fatal() bool { return k == Syntax }

// Diagnostic is a single accumulated error or warning.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s in line %d: %s", d.Kind, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Errors is an accumulating, non-fatal diagnostic list.
type Errors []Diagnostic

// Add appends a diagnostic.
func (e *Errors) Add(kind Kind, line int, format string, a ...interface{}) {
	*e = append(*e, Diagnostic{Kind: kind, Line: line, Message: fmt.Sprintf(format, a...)})
}

// HasFatal reports whether any accumulated diagnostic blocks execution.
func (e Errors) HasFatal() bool {
	for _, d := range e {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}
