package service

import (
	"context"
	"time"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/client"
	"campervan_catalog/internal/metrics"
	"campervan_catalog/internal/models"
	"campervan_catalog/internal/repository"
	"campervan_catalog/internal/session"
)

// Provider is the flaky mock backend.
type Provider interface {
	FetchCatalogPage(ctx context.Context) (models.CatalogPage, error)
}

// Listing produces the server-rendered first batch.
type Listing interface {
	InitialPage(ctx context.Context, page int) (models.CatalogPage, error)
}

// Tokens issues and validates session handles.
type Tokens interface {
	Issue(sessionID string) (string, error)
	Parse(accessToken string) (string, error)
}

// Sessions owns the per-page-view load controllers.
type Sessions interface {
	Open(initial *models.CatalogPage, page int) *session.Session
	Get(id string) (*session.Session, error)
}

// Sweeper evicts idle sessions until ctx is canceled.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Provider
	Listing
	Tokens
	Sessions
	Sweeper
}

type Config struct {
	PageSize      int
	FailureRate   float64
	FetchTimeout  time.Duration
	APIBaseURL    string // empty: sessions call the provider in-process
	SessionTTL    time.Duration
	SessionSecret string
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config, m *metrics.Metrics) *Service {
	provider := NewProviderService(repos.Catalog,
		WithFailureRate(cfg.FailureRate),
		WithProviderMetrics(m),
	)

	var fetcher catalog.Fetcher = provider
	if cfg.APIBaseURL != "" {
		fetcher = client.New(cfg.APIBaseURL, client.WithTimeout(cfg.FetchTimeout))
	}

	store := session.NewStore(fetcher, session.Config{
		PageSize: cfg.PageSize,
		Timeout:  cfg.FetchTimeout,
		TTL:      cfg.SessionTTL,
	}, session.WithMetrics(m))

	return &Service{
		Provider: provider,
		Listing:  NewListingService(provider, cfg.PageSize),
		Tokens:   NewTokenService(cfg.SessionSecret, cfg.SessionTTL),
		Sessions: store,
		Sweeper:  store,
	}
}
