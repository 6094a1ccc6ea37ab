package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"campervan_catalog/internal/metrics"
	"campervan_catalog/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type mockCatalogRepo struct {
	items []models.Product
	err   error
	calls int
}

func (m *mockCatalogRepo) List(ctx context.Context) ([]models.Product, error) {
	m.calls++
	return m.items, m.err
}

func fixed(v float64) func() float64 { return func() float64 { return v } }

func TestProvider_ReturnsWholeDataset(t *testing.T) {
	repo := &mockCatalogRepo{items: []models.Product{{Name: "a"}, {Name: "b"}, {Name: "c"}}}
	p := NewProviderService(repo, WithRandom(fixed(0.99)))

	page, err := p.FetchCatalogPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count != 3 || len(page.Items) != 3 {
		t.Fatalf("expected count=3 with 3 items, got %+v", page)
	}
}

func TestProvider_SimulatedFailure(t *testing.T) {
	repo := &mockCatalogRepo{items: []models.Product{{Name: "a"}}}
	p := NewProviderService(repo, WithRandom(fixed(0.1)))

	_, err := p.FetchCatalogPage(context.Background())
	if !errors.Is(err, ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repo must not be read on a simulated outage, got %d calls", repo.calls)
	}
}

func TestProvider_FailureRateBoundaries(t *testing.T) {
	repo := &mockCatalogRepo{items: []models.Product{{Name: "a"}}}
	cases := []struct {
		name    string
		rate    float64
		draw    float64
		wantErr bool
	}{
		{"default_rate_below", DefaultFailureRate, 0.19, true},
		{"default_rate_at", DefaultFailureRate, 0.2, false},
		{"never_fails", 0, 0, false},
		{"always_fails", 1, 0.999, true},
		{"clamped_negative", -3, 0, false},
		{"clamped_above_one", 7, 0.999, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewProviderService(repo, WithFailureRate(tc.rate), WithRandom(fixed(tc.draw)))
			_, err := p.FetchCatalogPage(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("rate=%v draw=%v: err=%v, wantErr=%v", tc.rate, tc.draw, err, tc.wantErr)
			}
		})
	}
}

func TestProvider_RepoErrorWrapped(t *testing.T) {
	boom := errors.New("disk gone")
	p := NewProviderService(&mockCatalogRepo{err: boom}, WithFailureRate(0))

	_, err := p.FetchCatalogPage(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestProvider_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	repo := &mockCatalogRepo{items: []models.Product{{Name: "a"}}}

	draws := []float64{0.5, 0.05, 0.7}
	i := 0
	next := func() float64 { v := draws[i]; i++; return v }
	p := NewProviderService(repo, WithRandom(next), WithProviderMetrics(m))
	for range draws {
		_, _ = p.FetchCatalogPage(context.Background())
	}

	want := `
# HELP catalog_provider_requests_total Mock catalogue provider calls by outcome.
# TYPE catalog_provider_requests_total counter
catalog_provider_requests_total{outcome="failure"} 1
catalog_provider_requests_total{outcome="ok"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "catalog_provider_requests_total"); err != nil {
		t.Fatal(err)
	}
}
