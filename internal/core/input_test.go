package core

import (
	"testing"
	"time"
)

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone) // ignored
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	if len(f.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(f.Actions))
	}
	want := []Action{ActionLeft, ActionLeft, ActionRotate}
	for i, a := range want {
		if f.Actions[i] != a {
			t.Errorf("Actions[%d] = %v, expected %v", i, f.Actions[i], a)
		}
	}
	if !f.Has(ActionRotate) || f.Has(ActionHardDrop) {
		t.Error("Has() reported wrong membership")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Elapsed = 20 * time.Millisecond
	if f.Empty() {
		t.Error("frame with an action should not be empty")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}
	if f.Elapsed != 0 {
		t.Errorf("Elapsed after Clear = %v, expected 0", f.Elapsed)
	}
}

func TestActionString(t *testing.T) {
	if ActionHardDrop.String() != "HardDrop" {
		t.Errorf("ActionHardDrop.String() = %q", ActionHardDrop.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
