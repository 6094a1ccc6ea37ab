package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"campervan_catalog/internal/metrics"
	"campervan_catalog/internal/models"
	"campervan_catalog/internal/repository"
)

// DefaultFailureRate is the share of provider calls that fail.
const DefaultFailureRate = 0.2

// ErrProviderFailure is the simulated backend outage.
var ErrProviderFailure = errors.New("catalog provider unavailable")

// ProviderService is the mock backend. Every call returns the full dataset
// or fails outright; callers slice what they need.
type ProviderService struct {
	repo        repository.CatalogRepo
	failureRate float64
	random      func() float64
	metrics     *metrics.Metrics
}

type ProviderOption func(*ProviderService)

// WithFailureRate sets the failure probability, clamped to [0, 1].
func WithFailureRate(p float64) ProviderOption {
	return func(s *ProviderService) {
		s.failureRate = min(max(p, 0), 1)
	}
}

// WithRandom replaces the [0, 1) source used to decide failures.
func WithRandom(random func() float64) ProviderOption {
	return func(s *ProviderService) {
		s.random = random
	}
}

func WithProviderMetrics(m *metrics.Metrics) ProviderOption {
	return func(s *ProviderService) {
		s.metrics = m
	}
}

func NewProviderService(repo repository.CatalogRepo, opts ...ProviderOption) *ProviderService {
	s := &ProviderService{
		repo:        repo,
		failureRate: DefaultFailureRate,
		random:      rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCatalogPage returns {count, items} for the whole dataset, or
// ErrProviderFailure on a simulated outage.
func (s *ProviderService) FetchCatalogPage(ctx context.Context) (models.CatalogPage, error) {
	if s.random() < s.failureRate {
		s.metrics.ObserveProvider(metrics.OutcomeFailure)
		return models.CatalogPage{}, ErrProviderFailure
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.ObserveProvider(metrics.OutcomeFailure)
		return models.CatalogPage{}, fmt.Errorf("list catalog: %w", err)
	}
	s.metrics.ObserveProvider(metrics.OutcomeOK)
	return models.CatalogPage{Count: len(items), Items: items}, nil
}
