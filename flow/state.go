// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"fmt"
	"slices"
)

// State is a state of a flow invocation.
type State int

const (
	StateIdle State = iota
	StateInputValidating
	StatePromptRendering
	StateInvoking
	StateOutputValidating
	StateSucceeded
	StateFailed
)

var stateNames = [...]string{
	StateIdle:             "Idle",
	StateInputValidating:  "InputValidating",
	StatePromptRendering:  "PromptRendering",
	StateInvoking:         "Invoking",
	StateOutputValidating: "OutputValidating",
	StateSucceeded:        "Succeeded",
	StateFailed:           "Failed",
}

// String implements [fmt.Stringer].
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *State) UnmarshalText(b []byte) error {
	i := slices.Index(stateNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown flow state %q", b)
	}
	*s = State(i)
	return nil
}

// Terminal reports whether s ends an invocation.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:             {StateInputValidating},
	StateInputValidating:  {StatePromptRendering, StateFailed},
	StatePromptRendering:  {StateInvoking, StateFailed},
	StateInvoking:         {StateOutputValidating, StateFailed},
	StateOutputValidating: {StateSucceeded, StateFailed},
}

// CanTransition reports whether an invocation may move from s to next.
func (s State) CanTransition(next State) bool {
	return slices.Contains(transitions[s], next)
}

// machine tracks the states visited by one invocation.
type machine struct {
	state State
	path  []State
}

func newMachine() *machine {
	return &machine{state: StateIdle, path: []State{StateIdle}}
}

// to moves to next. An illegal transition is a programming error.
func (m *machine) to(next State) {
	if !m.state.CanTransition(next) {
		panic(fmt.Sprintf("flow: illegal transition %s -> %s", m.state, next))
	}
	m.state = next
	m.path = append(m.path, next)
}
