// Package playback replays a built run at a fixed tick rate.
//
// A Player fires one transition of the machine's loaded run per tick, the same
// way TuringMachine.Tick does when driven by hand, so every tick raises the
// usual transition-fired, head and current-state events on the machine's bus.
// Renderers subscribe to the bus, or pass an OnStep callback, and redraw.
//
// # Example Usage
//
//	if err := m.Build(ctx); err != nil {
//		return err
//	}
//	p := playback.New(m, playback.Config{TickRate: 100 * time.Millisecond})
//	if err := p.Run(ctx); err != nil {
//		return err
//	}
//
// # Ownership
//
// While a Player runs it owns the machine: the caller must not read or edit
// the machine until Run returns or Stop has been called. OnStep runs on the
// player goroutine and may read the machine.
package playback
