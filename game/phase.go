package game

import (
	"errors"
	"sync"
)

// Phase 是一局游戏所处的阶段
type Phase string

const (
	PhaseWaiting     Phase = "waiting"
	PhaseRoundActive Phase = "round_active"
	PhaseRoundEnded  Phase = "round_ended"
	PhaseFinished    Phase = "finished"
)

// ErrTransitionNotAllowed is returned when a phase change is not registered or
// its condition does not hold.
var ErrTransitionNotAllowed = errors.New("game: phase transition not allowed")

// PhaseMachine 阶段状态机。只有注册过的转换才被允许。
type PhaseMachine struct {
	current     Phase
	transitions map[Phase]map[Phase]func() bool // from -> to -> condition
	onEnter     map[Phase][]func(from Phase)
	mutex       sync.RWMutex
}

// NewPhaseMachine 创建阶段状态机，并注册一局游戏的标准转换
func NewPhaseMachine() *PhaseMachine {
	m := &PhaseMachine{
		current:     PhaseWaiting,
		transitions: make(map[Phase]map[Phase]func() bool),
		onEnter:     make(map[Phase][]func(Phase)),
	}
	m.AddTransition(PhaseWaiting, PhaseRoundActive, nil)
	m.AddTransition(PhaseRoundActive, PhaseRoundEnded, nil)
	m.AddTransition(PhaseRoundEnded, PhaseRoundActive, nil)
	for _, from := range []Phase{PhaseWaiting, PhaseRoundActive, PhaseRoundEnded} {
		m.AddTransition(from, PhaseFinished, nil)
	}
	return m
}

// AddTransition registers a transition. A nil condition always allows it.
func (m *PhaseMachine) AddTransition(from, to Phase, condition func() bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.transitions[from]; !exists {
		m.transitions[from] = make(map[Phase]func() bool)
	}
	m.transitions[from][to] = condition
}

// OnEnter registers a hook run after the machine enters p.
func (m *PhaseMachine) OnEnter(p Phase, fn func(from Phase)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.onEnter[p] = append(m.onEnter[p], fn)
}

// ChangePhase 切换阶段
func (m *PhaseMachine) ChangePhase(to Phase) error {
	m.mutex.Lock()
	from := m.current
	condition, exists := m.transitions[from][to]
	if !exists || (condition != nil && !condition()) {
		m.mutex.Unlock()
		return ErrTransitionNotAllowed
	}
	m.current = to
	hooks := append([]func(Phase){}, m.onEnter[to]...)
	m.mutex.Unlock()

	for _, fn := range hooks {
		fn(from)
	}
	return nil
}

// Current returns the current phase.
func (m *PhaseMachine) Current() Phase {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}
