package fsm

import (
	"fmt"
	"sync"
)

// TransitionRuleSet is a set of allowed destination states. This uses map of
// struct{} to implement a set.
type TransitionRuleSet[S comparable] map[S]struct{}

// Copy copies the TransitionRuleSet in to a different TransitionRuleSet.
func (trs TransitionRuleSet[S]) Copy() TransitionRuleSet[S] {
	srt := make(TransitionRuleSet[S], len(trs))

	for rule, value := range trs {
		srt[rule] = value
	}

	return srt
}

// CallbackHandler receives the source and destination of every permitted
// transition.
type CallbackHandler[S comparable] interface {
	StateTransitionCallback(from, to S)
}

// Machine is the state machine. The zero value has no states; states are
// registered with AddStateTransitionRules and the initial state is set with
// the first call to StateTransition.
type Machine[S comparable] struct {
	state       S
	initialized bool
	mu          sync.RWMutex

	transitions map[S]TransitionRuleSet[S]

	callback CallbackHandler[S]
}

// CurrentState returns the machine's current state. The second return is false
// if the machine has not been given an initial state.
func (m *Machine[S]) CurrentState() (S, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state, m.initialized
}

// StateTransitionRules returns the allowed destinations for state.
func (m *Machine[S]) StateTransitionRules(state S) (TransitionRuleSet[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.transitions == nil {
		return nil, newErrorStruct("the machine has not been fully initialized", ErrorMachineNotInitialized)
	}

	// ensure the state has been registered
	if _, ok := m.transitions[state]; !ok {
		return nil, newErrorStruct(fmt.Sprintf("state %v has not been registered", state), ErrorStateUndefined)
	}

	return m.transitions[state].Copy(), nil
}

// AddStateTransitionRules defines which states sourceState may transition to.
// Terminal states are registered with no destinations.
func (m *Machine[S]) AddStateTransitionRules(sourceState S, destinationStates ...S) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transitions == nil {
		m.transitions = make(map[S]TransitionRuleSet[S])
	}

	if m.transitions[sourceState] == nil {
		m.transitions[sourceState] = make(TransitionRuleSet[S])
	}

	// avoids doing the map lookup for each iteration
	mp := m.transitions[sourceState]

	for _, dest := range destinationStates {
		mp[dest] = struct{}{}
	}
}

// SetStateTransitionCallback sets a callback that is run synchronously after
// every permitted transition, outside the machine's lock.
func (m *Machine[S]) SetStateTransitionCallback(callback CallbackHandler[S]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callback = callback
}

// StateTransition triggers a transition to toState. The first call sets the
// initial state.
//
// When transitioning from a state, this returns an error either if the state
// transition is not allowed, or if the destination state has not been defined.
// In both cases, it's seen as a non-permitted state transition.
func (m *Machine[S]) StateTransition(toState S) error {
	from, callback, err := m.transition(toState)
	if err != nil {
		return err
	}
	if callback != nil {
		callback.StateTransitionCallback(from, toState)
	}
	return nil
}

func (m *Machine[S]) transition(toState S) (from S, callback CallbackHandler[S], err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transitions == nil {
		err = newErrorStruct("the machine has no states added", ErrorMachineNotInitialized)
		return
	}

	if !m.initialized {
		if _, ok := m.transitions[toState]; !ok {
			err = newErrorStruct("the initial state has not been defined within the machine", ErrorStateUndefined)
			return
		}

		m.state = toState
		m.initialized = true
		return
	}

	if _, ok := m.transitions[m.state][toState]; !ok {
		err = newErrorStruct(fmt.Sprintf("transition from state %v to %v is not permitted", m.state, toState), ErrorTransitionNotPermitted)
		return
	}

	if _, ok := m.transitions[toState]; !ok {
		err = newErrorStruct(fmt.Sprintf("state %v has not been registered", toState), ErrorStateUndefined)
		return
	}

	from = m.state
	m.state = toState
	callback = m.callback
	return
}

type ErrorCode uint

func (e ErrorCode) String() string {
	switch e {
	case ErrorMachineNotInitialized:
		return "MachineNotInitialized"
	case ErrorTransitionNotPermitted:
		return "TransitionNotPermitted"
	case ErrorStateUndefined:
		return "StateUndefined"
	default:
		return "Unknown"
	}
}

const (
	// ErrorUnknown is the default value
	ErrorUnknown ErrorCode = iota

	// ErrorMachineNotInitialized is returned when actions are taken on a
	// machine before any states were added.
	ErrorMachineNotInitialized

	// ErrorTransitionNotPermitted is returned when the machine is not
	// permitted to transition from the current state to the one requested.
	ErrorTransitionNotPermitted

	// ErrorStateUndefined is returned when the requested state is not defined
	// within the machine.
	ErrorStateUndefined
)

// Error is the struct representing internal errors.
type Error struct {
	message string
	code    ErrorCode
}

func newErrorStruct(message string, code ErrorCode) *Error {
	return &Error{
		message: message,
		code:    code,
	}
}

// Message returns the error message.
func (e *Error) Message() string { return e.message }

// Code returns the error code.
func (e *Error) Code() ErrorCode { return e.code }

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.code, e.code, e.message)
}
