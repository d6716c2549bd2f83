package entity

// Signal is a typed observer list. Listeners run in subscription order.
// A Once subscription is removed before its listener runs, so it is delivered
// exactly once even if the listener emits again.
type Signal[T any] struct {
	subs   []*Subscription[T]
	nextID uint64
}

// Subscription is the handle returned by Subscribe and Once.
type Subscription[T any] struct {
	signal *Signal[T]
	id     uint64
	fn     func(T)
	once   bool
	active bool
}

// Subscribe registers fn for every emission.
func (s *Signal[T]) Subscribe(fn func(T)) *Subscription[T] {
	return s.add(fn, false)
}

// Once registers fn for the next emission only.
func (s *Signal[T]) Once(fn func(T)) *Subscription[T] {
	return s.add(fn, true)
}

// Emit delivers v to every active listener.
// Listeners added during Emit are not called for this emission.
func (s *Signal[T]) Emit(v T) {
	current := make([]*Subscription[T], len(s.subs))
	copy(current, s.subs)
	for _, sub := range current {
		if !sub.active {
			continue
		}
		if sub.once {
			sub.Unsubscribe()
		}
		sub.fn(v)
	}
}

// Len returns the number of active listeners.
func (s *Signal[T]) Len() int {
	return len(s.subs)
}

// Clear drops every listener.
func (s *Signal[T]) Clear() {
	for _, sub := range s.subs {
		sub.active = false
	}
	s.subs = nil
}

func (s *Signal[T]) add(fn func(T), once bool) *Subscription[T] {
	s.nextID++
	sub := &Subscription[T]{signal: s, id: s.nextID, fn: fn, once: once, active: true}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes the listener. Safe to call more than once, and on nil.
func (sub *Subscription[T]) Unsubscribe() {
	if sub == nil || !sub.active {
		return
	}
	sub.active = false
	subs := sub.signal.subs
	for i, other := range subs {
		if other == sub {
			sub.signal.subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
}

// Active reports whether the listener is still registered.
func (sub *Subscription[T]) Active() bool {
	return sub != nil && sub.active
}
