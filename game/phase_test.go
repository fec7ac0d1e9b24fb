package game

import (
	"errors"
	"testing"
)

func TestPhaseMachine_Transitions(t *testing.T) {
	m := NewPhaseMachine()
	if m.Current() != PhaseWaiting {
		t.Fatalf("Expected initial phase %s, got %s", PhaseWaiting, m.Current())
	}

	if err := m.ChangePhase(PhaseRoundEnded); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("Expected ErrTransitionNotAllowed, got %v", err)
	}

	for _, p := range []Phase{PhaseRoundActive, PhaseRoundEnded, PhaseRoundActive, PhaseFinished} {
		if err := m.ChangePhase(p); err != nil {
			t.Fatalf("ChangePhase(%s) failed: %v", p, err)
		}
	}

	if err := m.ChangePhase(PhaseRoundActive); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("A finished game should not start a round, got %v", err)
	}
}

func TestPhaseMachine_OnEnterAndCondition(t *testing.T) {
	m := NewPhaseMachine()

	var entered []Phase
	m.OnEnter(PhaseRoundActive, func(from Phase) {
		entered = append(entered, from)
		// hooks run unlocked and may read the machine
		if m.Current() != PhaseRoundActive {
			t.Errorf("Expected current phase %s inside the hook, got %s", PhaseRoundActive, m.Current())
		}
	})

	allowed := false
	m.AddTransition(PhaseWaiting, PhaseRoundActive, func() bool { return allowed })
	if err := m.ChangePhase(PhaseRoundActive); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("Expected the condition to block the change, got %v", err)
	}

	allowed = true
	if err := m.ChangePhase(PhaseRoundActive); err != nil {
		t.Fatalf("ChangePhase failed: %v", err)
	}
	if len(entered) != 1 || entered[0] != PhaseWaiting {
		t.Errorf("Expected one hook call from %s, got %v", PhaseWaiting, entered)
	}
}
