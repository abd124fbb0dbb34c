package turingmachines

import "errors"

var (
	// ErrInvalidMachine is returned by Build and BuildManual when the machine
	// has no initial state or no final state.
	ErrInvalidMachine = errors.New("machine needs at least one initial and one final state")
	// ErrDuplicateSymbol is returned when a symbol is already in the alphabet.
	ErrDuplicateSymbol = errors.New("symbol already exists")
	// ErrInvalidSymbol is returned for the empty symbol, which denotes blank.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrSearchExhausted is returned when the search reached the iteration cap
	// before resolving.
	ErrSearchExhausted = errors.New("non-deterministic search exhausted")
	// ErrSearchCancelled is returned when a build was cancelled mid-search.
	ErrSearchCancelled = errors.New("search cancelled")
	// ErrNoResolvablePath is returned when the search tree was exhausted with
	// no accepting and no final configuration.
	ErrNoResolvablePath = errors.New("no final state reachable")
	// ErrInvalidManualStep is returned for a manual step that cannot fire.
	ErrInvalidManualStep = errors.New("invalid manual step")
	// ErrNotBuilt is returned by navigation calls when no run is loaded.
	ErrNotBuilt = errors.New("machine not built")
	// ErrOutOfRange is returned for state, tape or head indices that do not exist.
	ErrOutOfRange = errors.New("index out of range")
	// ErrBuildInProgress is returned when a build is requested while one runs.
	ErrBuildInProgress = errors.New("build already in progress")
)
