package qscript

import "qscript/internal/host"

// HostCallbacks is the collaborator boundary of the external-interfaces
// section: everything the engine cannot or should not do itself —
// console output, pacing, and the visualization hints the (out-of-scope)
// front-end consumes — is routed through this interface. A CLI driver
// can implement it trivially; a browser host would wire it to the WebGL
// viewer this module does not implement.
type HostCallbacks = host.Callbacks

// NopHost is a HostCallbacks that discards everything; useful for tests
// and for embedding when only the classical/quantum semantics matter.
type NopHost = host.Nop
