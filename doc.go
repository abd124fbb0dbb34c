// Package turingmachines is an execution engine for multi-tape, 2-D,
// possibly non-deterministic Turing machines.
//
// A TuringMachine is a graph of states joined by transitions. Each transition
// carries read guards (per tape head, the set of symbols it accepts) and an
// ordered list of actions (head moves and writes). Tapes are sparse grids
// with any number of heads and optional bounds on every side.
//
// # Building a run
//
// Build explores the configuration tree breadth first from every initial
// state and loads the shortest accepting run it finds, or failing that the
// shortest run ending in a final state. The search is capped by
// WithMaximumNonDeterministicSearch and can be cancelled through its context
// or CancelBuild:
//
//	m := turingmachines.New()
//	// ... add symbols, states, tapes and transitions ...
//	if err := m.Build(ctx); err != nil {
//		return err
//	}
//	for {
//		fired, err := m.Tick()
//		if err != nil || !fired {
//			break
//		}
//	}
//
// Runs can also be driven by hand with BuildManual and ManualFireTransition.
//
// # Events
//
// Every structural edit and every logged run step is published on the
// machine's Bus. Handlers run synchronously on the publishing goroutine;
// during BuildAsync that is the build goroutine.
//
// # Concurrency
//
// A machine is not safe for concurrent use. The only calls allowed while a
// background build runs are IsBuilding and CancelBuild.
package turingmachines
