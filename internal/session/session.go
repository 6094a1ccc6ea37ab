// Package session scopes a load controller and a filter selection to one
// page view and fans every change out to its subscribers.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/metrics"
)

// viewBuffer is per subscriber; a slow reader only ever misses stale views.
const viewBuffer = 1

// Session is one page view. Load transitions and filter edits are
// serialized; the view is recomputed after each of them.
type Session struct {
	ID string

	ctrl    *catalog.Controller
	metrics *metrics.Metrics

	mu       sync.Mutex
	state    catalog.LoadState
	filters  catalog.FilterSelection
	view     catalog.View
	subs     map[int]chan catalog.View
	nextSub  int
	lastSeen time.Time
	closed   bool
	now      func() time.Time
}

func newSession(id string, ctrl *catalog.Controller, m *metrics.Metrics, now func() time.Time) *Session {
	s := &Session{
		ID:       id,
		ctrl:     ctrl,
		metrics:  m,
		subs:     make(map[int]chan catalog.View),
		lastSeen: now(),
		now:      now,
	}
	s.state = ctrl.Snapshot()
	s.view = catalog.Present(s.state, s.filters)
	ctrl.Subscribe(catalog.ObserverFunc(s.stateChanged))
	return s
}

// stateChanged runs under the controller lock, after each transition.
func (s *Session) stateChanged(st catalog.LoadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	s.publishLocked()
}

// Load asks the controller for the next batch, or retries the failed one.
// ErrBusy and ErrAllLoaded are swallowed; the returned view is current
// either way.
func (s *Session) Load(ctx context.Context) (catalog.View, error) {
	s.touch()
	start := time.Now()
	err := s.ctrl.Load(ctx)
	s.metrics.ObserveLoad(loadOutcome(err, s.ctrl.Snapshot().Status), time.Since(start))
	if errors.Is(err, catalog.ErrBusy) || errors.Is(err, catalog.ErrAllLoaded) {
		err = nil
	}
	return s.View(), err
}

func loadOutcome(err error, status catalog.Status) string {
	switch {
	case errors.Is(err, catalog.ErrBusy), errors.Is(err, catalog.ErrAllLoaded):
		return metrics.OutcomeIgnored
	case err != nil:
		return metrics.OutcomeError
	case status == catalog.StatusAllLoaded:
		return metrics.OutcomeAllLoaded
	default:
		return metrics.OutcomeReady
	}
}

// SetFilters replaces the selection wholesale.
func (s *Session) SetFilters(sel catalog.FilterSelection) catalog.View {
	return s.UpdateFilters(func(catalog.FilterSelection) catalog.FilterSelection { return sel })
}

// UpdateFilters derives the next selection from the current one atomically.
func (s *Session) UpdateFilters(edit func(catalog.FilterSelection) catalog.FilterSelection) catalog.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	s.filters = edit(s.filters)
	s.publishLocked()
	return s.view
}

func (s *Session) View() catalog.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return s.view
}

func (s *Session) Filters() catalog.FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Subscribe returns a channel receiving the view after every change and a
// cancel func. The channel is closed on cancel or when the session ends.
func (s *Session) Subscribe() (<-chan catalog.View, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan catalog.View, viewBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close ends all subscriptions.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) publishLocked() {
	s.view = catalog.Present(s.state, s.filters)
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- s.view:
		default:
			// drop the stale view the reader has not taken yet
			select {
			case <-ch:
			default:
			}
			ch <- s.view
		}
	}
}
