package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
)

// DefaultTickRate is used when Config.TickRate is zero.
const DefaultTickRate = 250 * time.Millisecond

// ErrRunning is returned by Start on a player that is already running.
var ErrRunning = errors.New("player already running")

// Config configures a Player.
type Config struct {
	TickRate time.Duration
	// OnStep, if set, is called after every tick that fired a transition.
	OnStep func(m *tm.TuringMachine, step int)
	Logger *log.Logger
}

// Player fires the loaded run of a machine at a fixed rate.
type Player struct {
	m        *tm.TuringMachine
	tickRate time.Duration
	onStep   func(*tm.TuringMachine, int)
	logger   *log.Logger

	mu      sync.Mutex
	tickNum uint64
	err     error
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates a player for m.
func New(m *tm.TuringMachine, cfg Config) *Player {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Logger.WithPrefix("playback")
	}
	return &Player{m: m, tickRate: cfg.TickRate, onStep: cfg.OnStep, logger: cfg.Logger}
}

// Start begins playback from the machine's cursor. It fails with
// tm.ErrNotBuilt when no run is loaded.
func (p *Player) Start(ctx context.Context) error {
	if !p.m.IsBuilt() {
		return fmt.Errorf("playback: %w", tm.ErrNotBuilt)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped != nil {
		select {
		case <-p.stopped:
		default:
			return ErrRunning
		}
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.stopped = make(chan struct{})
	p.err = nil
	go p.tickLoop(ctx, p.stopped)
	return nil
}

// Stop halts playback and waits for the tick loop to exit.
func (p *Player) Stop() error {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-stopped
	return p.Err()
}

// Wait blocks until playback reaches the end of the run or is stopped.
func (p *Player) Wait() error {
	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped != nil {
		<-stopped
	}
	return p.Err()
}

// Run plays the whole run and returns when it ends or ctx is done.
func (p *Player) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Wait()
}

// Err returns the error that stopped playback, if any.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// TickNumber returns how many ticks have elapsed.
func (p *Player) TickNumber() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tickNum
}

func (p *Player) tickLoop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(p.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			more, err := p.step()
			p.mu.Lock()
			p.tickNum++
			p.err = err
			p.mu.Unlock()
			if err != nil || !more {
				return
			}
		}
	}
}

func (p *Player) step() (more bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("playback tick panicked", "machine", p.m.ID(), "panic", r)
			more, err = false, fmt.Errorf("playback: panic: %v", r)
		}
	}()

	fired, err := p.m.Tick()
	if err != nil || !fired {
		return false, err
	}
	if p.onStep != nil {
		p.onStep(p.m, p.m.Cursor())
	}
	p.logger.Debug("tick", "machine", p.m.ID(), "cursor", p.m.Cursor())
	return true, nil
}
