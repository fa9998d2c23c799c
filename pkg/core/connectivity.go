package core

import (
	"sync"
	"time"
)

// systemClock is the default Clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// AlwaysOnline is a Connectivity that never reports offline. It is the
// default when no connectivity signal is injected: mutations are treated as
// synced and nothing is queued.
type AlwaysOnline struct{}

func (AlwaysOnline) Online() bool { return true }

func (AlwaysOnline) Subscribe(func(online bool)) (cancel func()) {
	return func() {}
}

// Switch is a toggleable Connectivity signal. The UI shell flips it from
// browser/network events; tests flip it directly.
type Switch struct {
	mu     sync.Mutex
	online bool
	subs   map[int]func(bool)
	nextID int
}

// NewSwitch creates a Switch in the given initial state.
func NewSwitch(online bool) *Switch {
	return &Switch{online: online, subs: make(map[int]func(bool))}
}

// Online implements Connectivity.
func (s *Switch) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Set flips the connectivity state and notifies subscribers on transitions.
func (s *Switch) Set(online bool) {
	s.mu.Lock()
	if s.online == online {
		s.mu.Unlock()
		return
	}
	s.online = online
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}

// Subscribe implements Connectivity.
func (s *Switch) Subscribe(fn func(online bool)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
