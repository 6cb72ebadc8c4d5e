package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// scheduledMsg wakes the Model to run queued composer callbacks.
type scheduledMsg struct{}

// scheduler queues composer callbacks until the Model runs them on the
// Bubble Tea goroutine. Schedule is safe to call from any goroutine.
type scheduler struct {
	mu   sync.Mutex
	fns  []func()
	wake chan struct{}
}

func newScheduler() *scheduler {
	return &scheduler{wake: make(chan struct{}, 1)}
}

func (s *scheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// drain runs queued callbacks, including ones queued while draining.
func (s *scheduler) drain() {
	for {
		s.mu.Lock()
		fns := s.fns
		s.fns = nil
		s.mu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

func (s *scheduler) listen() tea.Cmd {
	return func() tea.Msg {
		<-s.wake
		return scheduledMsg{}
	}
}
