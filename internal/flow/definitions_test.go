// ABOUTME: Tests for the static flow definition table
// ABOUTME: Verifies table integrity and transition target reachability

package flow

import (
	"testing"
)

func TestLookup_KnownStates(t *testing.T) {
	known := [][2]any{
		{FlowWelcome, StepInit},
		{FlowWelcome, StepAwaitingMenuRequest},
		{FlowWelcome, StepAwaitingMenuSelection},
		{FlowInfoLab, StepInit},
		{FlowInfoLab, StepAwaitingExit},
		{FlowRoles, StepInit},
		{FlowRoles, StepAwaitingExit},
		{FlowSupport, StepInit},
		{FlowSupport, StepAwaitingIssue},
		{FlowSupport, StepAwaitingExit},
	}

	for _, pair := range known {
		flow, step := pair[0].(ID), pair[1].(Step)
		if _, ok := Lookup(flow, step); !ok {
			t.Errorf("Lookup(%s, %s) = false, want defined", flow, step)
		}
	}
}

func TestLookup_UnknownStates(t *testing.T) {
	if _, ok := Lookup("PAYMENTS", StepInit); ok {
		t.Error("Lookup(PAYMENTS, INIT) = true, want undefined")
	}
	if _, ok := Lookup(FlowWelcome, StepAwaitingIssue); ok {
		t.Error("Lookup(WELCOME, AWAITING_ISSUE) = true, want undefined")
	}
}

func TestNextStepTargetsExist(t *testing.T) {
	// Every NextStep named by a node must itself be a defined step of the
	// same flow, so the engine can never be steered outside the table.
	for flow, steps := range definitions {
		for step, node := range steps {
			if node.NextStep == "" {
				continue
			}
			if _, ok := steps[node.NextStep]; !ok {
				t.Errorf("(%s, %s) names next step %s which is not defined", flow, step, node.NextStep)
			}
		}
	}
}

func TestWelcomeInitHasMenuOptions(t *testing.T) {
	node, ok := Lookup(FlowWelcome, StepInit)
	if !ok {
		t.Fatal("WELCOME/INIT missing from table")
	}
	if node.Message == "" {
		t.Error("WELCOME/INIT has no message")
	}
	if len(node.Options) != 3 {
		t.Errorf("WELCOME/INIT has %d options, want 3", len(node.Options))
	}
}

func TestFallbackOnlyOnMenuSelection(t *testing.T) {
	node, ok := Lookup(FlowWelcome, StepAwaitingMenuSelection)
	if !ok {
		t.Fatal("WELCOME/AWAITING_MENU_SELECTION missing from table")
	}
	if node.Fallback == "" {
		t.Error("menu selection step should carry a fallback message")
	}
}
