package model

import "errors"

// Sentinel errors for the engine and override manager. Infeasible demand
// and constraint-violation warnings are data states, not errors, and are
// carried on results rather than returned through these.
var (
	// ErrValidation indicates malformed or missing input; nothing is committed.
	ErrValidation = errors.New("validation error")

	// ErrConcurrentEdit indicates an override targeted an allocation that no
	// longer belongs to the run the editing session is pinned to.
	ErrConcurrentEdit = errors.New("allocation does not belong to the pinned run")

	// ErrEngineTimeout indicates the run exceeded its time budget; no
	// allocations were committed.
	ErrEngineTimeout = errors.New("allocation run cancelled before completion")
)
