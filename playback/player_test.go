package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tm "github.com/comalice/turingmachines"
	"github.com/comalice/turingmachines/internal/logger"
	"github.com/comalice/turingmachines/testutil"
)

func TestPlayer_RequiresBuild(t *testing.T) {
	u := testutil.NewUnary("1", false)
	p := New(u.M, Config{TickRate: time.Millisecond, Logger: logger.Discard()})
	assert.ErrorIs(t, p.Start(context.Background()), tm.ErrNotBuilt)
	assert.NoError(t, p.Stop())
}

func TestPlayer_RunsToEnd(t *testing.T) {
	u := testutil.NewUnary("111", false)
	require.NoError(t, u.M.Build(context.Background()))

	var steps []int
	fired := 0
	u.M.Bus().Subscribe(tm.TopicTransitionFired, func(tm.Event) { fired++ })
	p := New(u.M, Config{
		TickRate: time.Millisecond,
		Logger:   logger.Discard(),
		OnStep:   func(_ *tm.TuringMachine, step int) { steps = append(steps, step) },
	})

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []int{1, 2, 3, 4}, steps)
	assert.Equal(t, 4, fired)
	assert.Equal(t, u.Y, u.M.CurrentState())
	// One extra tick notices the end of the run.
	assert.Equal(t, uint64(5), p.TickNumber())
}

func TestPlayer_StopMidway(t *testing.T) {
	u := testutil.NewUnary("1111111111", false)
	require.NoError(t, u.M.Build(context.Background()))

	first := make(chan struct{})
	p := New(u.M, Config{
		TickRate: time.Millisecond,
		Logger:   logger.Discard(),
		OnStep: func(_ *tm.TuringMachine, step int) {
			if step == 1 {
				close(first)
			}
			time.Sleep(5 * time.Millisecond)
		},
	})
	require.NoError(t, p.Start(context.Background()))
	assert.ErrorIs(t, p.Start(context.Background()), ErrRunning)

	<-first
	require.NoError(t, p.Stop())
	assert.Less(t, u.M.Cursor(), 11)
}

func TestPlayer_ContextCancel(t *testing.T) {
	u := testutil.NewUnary("11", false)
	require.NoError(t, u.M.Build(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(u.M, Config{TickRate: time.Hour, Logger: logger.Discard()})
	require.NoError(t, p.Run(ctx))
	assert.Equal(t, 0, u.M.Cursor())
}

func TestPlayer_Restart(t *testing.T) {
	u := testutil.NewUnary("1", false)
	require.NoError(t, u.M.Build(context.Background()))
	p := New(u.M, Config{TickRate: time.Millisecond, Logger: logger.Discard()})
	require.NoError(t, p.Run(context.Background()))

	require.NoError(t, u.M.LoadFirstConfiguration())
	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 2, u.M.Cursor())
}
