package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"campervan_catalog/internal/models"
)

var errOutage = errors.New("outage")

func makeProducts(n int) []models.Product {
	types := []string{models.VehicleCampervan, models.VehicleIntergrated, models.VehicleBuiltIn, models.VehicleAlcove}
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			Location:        "Praha",
			Name:            fmt.Sprintf("van-%02d", i),
			Price:           float64(1000 + 100*i),
			VehicleType:     types[i%len(types)],
			InstantBookable: i%3 == 0,
			Pictures:        []string{fmt.Sprintf("https://example.test/%d.jpg", i)},
		}
	}
	return out
}

// scriptedFetcher replays results in order, then repeats the last one.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

type fetchResult struct {
	page models.CatalogPage
	err  error
}

func (f *scriptedFetcher) FetchCatalogPage(ctx context.Context) (models.CatalogPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	r := f.results[i]
	return r.page, r.err
}

func (f *scriptedFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func ok(count int, items []models.Product) fetchResult {
	return fetchResult{page: models.CatalogPage{Count: count, Items: items}}
}

func fail(err error) fetchResult {
	return fetchResult{err: err}
}

func initialPage(count int, items []models.Product) *models.CatalogPage {
	return &models.CatalogPage{Count: count, Items: items}
}

// statusRecorder captures every status an Observer sees.
type statusRecorder struct {
	mu       sync.Mutex
	statuses []Status
}

func (r *statusRecorder) StateChanged(st LoadState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, st.Status)
}

func (r *statusRecorder) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.statuses...)
}
