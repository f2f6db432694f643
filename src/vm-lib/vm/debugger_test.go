package vm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pauseRecorder struct {
	counters []int
	ops      []Opcode
	actions  []Action
}

func (r *pauseRecorder) callback(p *Process, in Instruction) Action {
	r.counters = append(r.counters, p.Snapshot().Counter)
	r.ops = append(r.ops, in.Op)
	if len(r.actions) == 0 {
		return ActionContinue
	}
	a := r.actions[0]
	r.actions = r.actions[1:]
	return a
}

func counterIs(n int) Condition {
	return func(p Probe) bool { return p.Counter == n }
}

func TestBreakpoints(t *testing.T) {
	t.Run("pauses before matching instruction", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{}
		d := e.AttachDebugger(rec.callback)
		bp := d.AddBreakpoint(counterIs(2))
		e.Spawn(mustParse(t, `["NOP","NOP",{"op":"PUSH","arg":1},"POP"]`))

		require.NoError(t, e.Run(context.Background()))
		assert.Equal(t, []int{2}, rec.counters)
		assert.Equal(t, []Opcode{OpPush}, rec.ops)
		assert.Equal(t, 1, bp.HitCount())
		id, ok := d.LastHit()
		assert.True(t, ok)
		assert.Equal(t, bp.ID(), id)
	})

	t.Run("disabled breakpoint does not fire", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{}
		d := e.AttachDebugger(rec.callback)
		bp := d.AddBreakpoint(counterIs(0))
		bp.Disable()
		assert.False(t, bp.Enabled())
		e.Spawn(mustParse(t, `["NOP"]`))

		require.NoError(t, e.Run(context.Background()))
		assert.Empty(t, rec.counters)

		bp.Enable()
		e.Spawn(mustParse(t, `["NOP"]`))
		require.NoError(t, e.Run(context.Background()))
		assert.Equal(t, []int{0}, rec.counters)
	})

	t.Run("ignore count skips matches", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{}
		d := e.AttachDebugger(rec.callback)
		bp := d.AddBreakpoint(func(p Probe) bool { return p.Address == 1 })
		bp.SetIgnoreCount(2)
		e.Spawn(mustParse(t, `["NOP","NOP","NOP","NOP"]`))

		require.NoError(t, e.Run(context.Background()))
		assert.Equal(t, []int{2, 3}, rec.counters)
		assert.Equal(t, 0, bp.IgnoreCount())
		assert.Equal(t, 2, bp.HitCount())
	})

	t.Run("remove and clear", func(t *testing.T) {
		e, _ := newTestEngine()
		d := e.AttachDebugger(nil)
		a := d.AddBreakpoint(counterIs(0))
		d.AddBreakpoint(counterIs(1))

		assert.True(t, d.RemoveBreakpoint(a.ID()))
		assert.False(t, d.RemoveBreakpoint(a.ID()))
		_, ok := d.Breakpoint(a.ID())
		assert.False(t, ok)
		assert.Len(t, d.Breakpoints(), 1)
		assert.Equal(t, 1, d.ClearBreakpoints())
		assert.Empty(t, d.Breakpoints())
	})
}

func TestStepping(t *testing.T) {
	t.Run("step pauses on every instruction", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{actions: []Action{ActionStep, ActionStep, ActionContinue}}
		d := e.AttachDebugger(rec.callback)
		d.AddBreakpoint(counterIs(0))
		e.Spawn(mustParse(t, `["NOP","NOP","NOP","NOP"]`))

		require.NoError(t, e.Run(context.Background()))
		assert.Equal(t, []int{0, 1, 2}, rec.counters)
		_, ok := d.LastHit()
		assert.False(t, ok)
	})

	t.Run("step over skips the called routine", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{actions: []Action{ActionStepOver, ActionContinue}}
		d := e.AttachDebugger(rec.callback)
		d.AddBreakpoint(counterIs(0))
		e.Spawn(mustParse(t, `[{"op":"CALL","arg":3},"NOP","HALT","NOP","RETURN"]`))

		require.NoError(t, e.Run(context.Background()))
		assert.Equal(t, []int{0, 1}, rec.counters)
	})

	t.Run("abort stops the run", func(t *testing.T) {
		e, _ := newTestEngine()
		rec := &pauseRecorder{actions: []Action{ActionAbort}}
		d := e.AttachDebugger(rec.callback)
		d.AddBreakpoint(counterIs(1))
		p := e.Spawn(mustParse(t, `["NOP","NOP","NOP"]`))

		assert.ErrorIs(t, e.Run(context.Background()), ErrAborted)
		assert.Equal(t, 1, p.Snapshot().Counter)

		// A pending abort also fails the next run until the debugger is reset.
		assert.ErrorIs(t, e.Run(context.Background()), ErrAborted)
		d.Reset()
		require.NoError(t, e.Run(context.Background()))
	})

	t.Run("requested abort without a pause", func(t *testing.T) {
		e, _ := newTestEngine()
		d := e.AttachDebugger(nil)
		assert.False(t, d.AbortRequested())
		d.RequestAbort()
		assert.True(t, d.AbortRequested())
		e.Spawn(mustParse(t, `["NOP"]`))
		assert.ErrorIs(t, e.Run(context.Background()), ErrAborted)

		d.Reset()
		assert.False(t, d.AbortRequested())
	})

	t.Run("process killed while paused is skipped", func(t *testing.T) {
		e, _ := newTestEngine()
		d := e.AttachDebugger(func(p *Process, in Instruction) Action {
			require.NoError(t, e.Kill(p.Address(), ""))
			return ActionContinue
		})
		d.AddBreakpoint(counterIs(0))
		p := e.Spawn(mustParse(t, `["NOP","NOP"]`))

		require.NoError(t, e.Run(context.Background()))
		state := p.Snapshot()
		assert.Equal(t, StatusCrashed, state.Status)
		assert.Equal(t, uint64(0), state.Executed)
	})
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "continue", ActionContinue.String())
	assert.Equal(t, "step", ActionStep.String())
	assert.Equal(t, "stepOver", ActionStepOver.String())
	assert.Equal(t, "abort", ActionAbort.String())
}
