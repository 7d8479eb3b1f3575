// Package refresh broadcasts "data changed somewhere" to interested pages.
// The dashboard subscribes so that a transaction added on another page forces
// a re-aggregation without the pages knowing about each other.
package refresh

import "sync"

// Signal is a monotonically incrementing counter with subscriber channels.
// Trigger increments exactly once per call. Delivery is latest-wins per
// subscriber: rapid triggers may coalesce, but after any trigger at least one
// downstream refresh will be observed.
type Signal struct {
	mu   sync.Mutex
	key  int
	subs []chan int
}

func NewSignal() *Signal { return &Signal{} }

// Key returns the current counter value.
func (s *Signal) Key() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Trigger bumps the counter and notifies every subscriber. Never blocks: a
// subscriber that has not drained its channel gets the pending value replaced
// by the newest one.
func (s *Signal) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key++
	for _, ch := range s.subs {
		select {
		case <-ch: // drop the stale pending value
		default:
		}
		ch <- s.key
	}
}

// Subscribe returns a channel carrying counter values. The channel is
// buffered; receiving is optional between triggers, only the latest value is
// retained.
func (s *Signal) Subscribe() <-chan int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan int, 1)
	s.subs = append(s.subs, ch)
	return ch
}
