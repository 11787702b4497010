package engine

import (
	"context"
	"time"
)

// RunLoop mirrors a host timer driving RunStep in batches: it fires
// every TickInterval, running up to StepsPerTick forward steps per
// tick, stopping early within a tick once the program IsDone. The
// loop itself never blocks a caller beyond ctx's cancellation —
// Delay(ms) (a builtin call made from within a step) adjusts
// TickInterval for ticks still to come, the same way the source's
// host timer responds to a script-issued delay.
type RunLoop struct {
	Engine       *Engine
	StepsPerTick int
	TickInterval time.Duration
}

// NewRunLoop returns a RunLoop with the default 20 steps/tick, 1ms
// cadence named in the concurrency model.
func NewRunLoop(e *Engine) *RunLoop {
	return &RunLoop{Engine: e, StepsPerTick: 20, TickInterval: time.Millisecond}
}

// SetDelay applies a host Delay(ms) request to the tick cadence,
// clamped to the [1,10000]ms range the host callback must validate.
func (r *RunLoop) SetDelay(ms int) {
	if ms < 1 {
		ms = 1
	}
	if ms > 10000 {
		ms = 10000
	}
	r.TickInterval = time.Duration(ms) * time.Millisecond
}

// Tick runs one bounded batch of up to StepsPerTick forward steps,
// stopping early once the program IsDone. It returns ctx.Err() if ctx
// was already cancelled before the batch started.
func (r *RunLoop) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := 0; i < r.StepsPerTick; i++ {
		if r.Engine.IsDone() {
			return nil
		}
		r.Engine.RunStep()
	}
	return nil
}

// Run drives the engine to completion one Tick per TickInterval, or
// until ctx is cancelled. stopped, if non-nil, is polled once per tick
// and stops the loop without cancelling ctx — the host's own external
// "stop" flag.
func (r *RunLoop) Run(ctx context.Context, stopped func() bool) {
	ticker := time.NewTicker(r.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stopped != nil && stopped() {
				return
			}
			if err := r.Tick(ctx); err != nil || r.Engine.IsDone() {
				return
			}
			ticker.Reset(r.TickInterval)
		}
	}
}
