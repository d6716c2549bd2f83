package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionPause) {
		t.Error("empty frame should not report actions")
	}

	f.Set(ActionPause)
	f.Set(ActionSpawn)
	if !f.Has(ActionPause) || !f.Has(ActionSpawn) {
		t.Error("Set actions should be reported by Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionPause) {
		t.Error("Clear should drop all actions")
	}
	if !clone.Has(ActionSpawn) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionRegenerate, "Regenerate"},
		{ActionFollow, "Follow"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
