package qscript

import "qscript/internal/diag"

// DiagnosticKind classifies a Diagnostic by the error-handling policy:
// lexical/parse errors block execution, everything else is a non-fatal,
// per-step annotation.
type DiagnosticKind = diag.Kind

const (
	DiagSyntax  = diag.Syntax
	DiagBounds  = diag.Bounds
	DiagDomain  = diag.Domain
	DiagFault   = diag.Fault
	DiagWarning = diag.Warning
)

// Diagnostic is a single accumulated, non-fatal error or warning. The
// engine and compiler never abort on a Diagnostic; they append it and
// continue.
type Diagnostic = diag.Diagnostic
