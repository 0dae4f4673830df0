package compiler

import "errors"

// ErrInvalidGraph is returned when the input MIG contains a node whose
// inputs are not all producible: a cycle, a dangling reference, or an
// unreachable output. It is also returned if compilation terminates
// (candidates exhausted) while some output is still unbound.
var ErrInvalidGraph = errors.New("compiler: invalid graph")

// ErrOutOfRows is returned when the free-row pool of the home subarray
// is exhausted mid-compilation. Non-recoverable for this compilation.
var ErrOutOfRows = errors.New("compiler: out of rows")

// ErrMissingSignal is returned when a candidate's input is not present
// in the value table at emission time. This signals a structural bug,
// since candidacy requires every input to already be present.
var ErrMissingSignal = errors.New("compiler: missing signal")
