package entity

import "testing"

func TestSignalOrderAndUnsubscribe(t *testing.T) {
	var s Signal[int]
	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	b := s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })

	s.Emit(1)
	b.Unsubscribe()
	b.Unsubscribe()
	s.Emit(2)

	want := []string{"a", "b", "c", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if b.Active() {
		t.Error("unsubscribed listener reports active")
	}
}

func TestSignalOnceIsExactlyOnce(t *testing.T) {
	var s Signal[int]
	calls := 0
	s.Once(func(v int) {
		calls++
		s.Emit(v + 1)
	})
	s.Emit(1)
	s.Emit(2)
	if calls != 1 {
		t.Errorf("Once listener ran %d times", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSignalListenersAddedDuringEmit(t *testing.T) {
	var s Signal[string]
	late := 0
	s.Subscribe(func(string) {
		s.Subscribe(func(string) { late++ })
	})
	s.Emit("x")
	if late != 0 {
		t.Error("listener added during Emit ran in the same emission")
	}
	s.Emit("y")
	if late != 1 {
		t.Errorf("late listener ran %d times, want 1", late)
	}
}

func TestSignalClear(t *testing.T) {
	var s Signal[int]
	sub := s.Subscribe(func(int) { t.Error("cleared listener ran") })
	s.Clear()
	s.Emit(1)
	if sub.Active() {
		t.Error("listener active after Clear")
	}
	var nilSub *Subscription[int]
	nilSub.Unsubscribe()
}
