package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestMachine(initial State, guard GuardFunc) StateMachine {
	builder := NewBuilder()
	builder.Configure(StateSubmitted).
		Permit(TriggerForward, StateForwarded).
		Permit(TriggerReject, StateRejected).
		Permit(TriggerFinalReject, StateRejected).
		PermitIf(TriggerFinalApprove, StateApproved, guard)
	builder.Configure(StateForwarded).
		Permit(TriggerReject, StateRejected)
	return builder.Build(initial)
}

func TestStateMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		initial State
		trigger Trigger
		guard   GuardFunc
		want    State
		wantErr error
	}{
		{
			name:    "forward from submitted",
			initial: StateSubmitted,
			trigger: TriggerForward,
			want:    StateForwarded,
		},
		{
			name:    "reject from submitted",
			initial: StateSubmitted,
			trigger: TriggerReject,
			want:    StateRejected,
		},
		{
			name:    "final reject from submitted",
			initial: StateSubmitted,
			trigger: TriggerFinalReject,
			want:    StateRejected,
		},
		{
			name:    "final approve with passing guard",
			initial: StateSubmitted,
			trigger: TriggerFinalApprove,
			guard:   func(context.Context) bool { return true },
			want:    StateApproved,
		},
		{
			name:    "final approve with failing guard",
			initial: StateSubmitted,
			trigger: TriggerFinalApprove,
			guard:   func(context.Context) bool { return false },
			wantErr: ErrGuardFailed,
		},
		{
			name:    "reject from forwarded",
			initial: StateForwarded,
			trigger: TriggerReject,
			want:    StateRejected,
		},
		{
			name:    "forward from forwarded is invalid",
			initial: StateForwarded,
			trigger: TriggerForward,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "final approve from forwarded is invalid",
			initial: StateForwarded,
			trigger: TriggerFinalApprove,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := buildTestMachine(tt.initial, tt.guard)
			err := m.Fire(context.Background(), tt.trigger)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.initial, m.State(), "state must not change on failed fire")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestStateMachine_TerminalStates(t *testing.T) {
	for _, terminal := range []State{StateApproved, StateRejected} {
		m := buildTestMachine(terminal, nil)

		assert.True(t, terminal.IsTerminal())
		assert.Empty(t, m.PermittedTriggers())

		for _, trigger := range []Trigger{TriggerForward, TriggerReject, TriggerFinalApprove, TriggerFinalReject} {
			assert.False(t, m.CanFire(trigger))
			err := m.Fire(context.Background(), trigger)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
	}
}

func TestStateMachine_CanFireIgnoresGuards(t *testing.T) {
	// CanFire reports configuration only; guards are evaluated by Fire
	m := buildTestMachine(StateSubmitted, func(context.Context) bool { return false })

	assert.True(t, m.CanFire(TriggerFinalApprove))
	assert.ErrorIs(t, m.Fire(context.Background(), TriggerFinalApprove), ErrGuardFailed)
}

func TestStateMachine_BuildIsolatesConfiguration(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateSubmitted).Permit(TriggerReject, StateRejected)

	first := builder.Build(StateSubmitted)

	// Later builder mutations must not leak into already built machines
	builder.Configure(StateSubmitted).Permit(TriggerForward, StateForwarded)

	assert.False(t, first.CanFire(TriggerForward))
	assert.True(t, builder.Build(StateSubmitted).CanFire(TriggerForward))
}

func TestState_IsValid(t *testing.T) {
	assert.True(t, StateSubmitted.IsValid())
	assert.True(t, StateForwarded.IsValid())
	assert.True(t, StateApproved.IsValid())
	assert.True(t, StateRejected.IsValid())
	assert.False(t, State("DRAFT").IsValid())
}
