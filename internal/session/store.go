package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/metrics"
	"campervan_catalog/internal/models"

	"github.com/google/uuid"
)

const defaultTTL = 30 * time.Minute

var ErrNotFound = errors.New("session not found")

type Config struct {
	PageSize int
	Timeout  time.Duration
	TTL      time.Duration
}

// Store holds live sessions in memory. Nothing is shared between them.
type Store struct {
	fetcher catalog.Fetcher
	cfg     Config
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

type Option func(*Store)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock replaces time.Now, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(fetcher catalog.Fetcher, cfg Config, opts ...Option) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	s := &Store{
		fetcher:  fetcher,
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a session from the server-rendered first batch. A nil
// initial page means the server-side fetch failed.
func (s *Store) Open(initial *models.CatalogPage, page int) *Session {
	ctrl := catalog.NewController(s.fetcher, initial, page, catalog.Config{
		PageSize: s.cfg.PageSize,
		Timeout:  s.cfg.Timeout,
	})
	sess := newSession(uuid.NewString(), ctrl, s.metrics, s.now)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetSessionsActive(n)
	return sess
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.cfg.TTL)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	for _, sess := range expired {
		sess.Close()
	}
	if len(expired) > 0 {
		s.metrics.SetSessionsActive(n)
	}
	return len(expired)
}

// Run sweeps at the given interval until ctx is canceled.
func (s *Store) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
