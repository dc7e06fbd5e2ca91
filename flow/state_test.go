// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"testing"
)

func TestState_CanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateInputValidating, true},
		{StateIdle, StateInvoking, false},
		{StateInputValidating, StateFailed, true},
		{StateInputValidating, StateInvoking, false},
		{StatePromptRendering, StateInvoking, true},
		{StateInvoking, StateOutputValidating, true},
		{StateInvoking, StateInvoking, false},
		{StateOutputValidating, StateSucceeded, true},
		{StateSucceeded, StateFailed, false},
		{StateFailed, StateInvoking, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"_"+tt.to.String(), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	if got := StateOutputValidating.String(); got != "OutputValidating" {
		t.Errorf("String() = %q, want OutputValidating", got)
	}
	if got := State(42).String(); got != "State(42)" {
		t.Errorf("String() = %q, want State(42)", got)
	}
	if !StateFailed.Terminal() || StateInvoking.Terminal() {
		t.Error("Terminal() misclassifies states")
	}
}

func TestMachine_IllegalTransitionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("illegal transition did not panic")
		}
	}()
	m := newMachine()
	m.to(StateSucceeded)
}

func TestState_UnmarshalText(t *testing.T) {
	var s State
	if err := s.UnmarshalText([]byte("OutputValidating")); err != nil {
		t.Fatal(err)
	}
	if s != StateOutputValidating {
		t.Errorf("UnmarshalText = %v, want %v", s, StateOutputValidating)
	}
	if err := s.UnmarshalText([]byte("Sleeping")); err == nil {
		t.Error("UnmarshalText(Sleeping) succeeded, want error")
	}
}
