package catalog

import (
	"context"

	"campervan_catalog/internal/models"
)

// Fetcher retrieves the full dataset. Any call may fail.
type Fetcher interface {
	FetchCatalogPage(ctx context.Context) (models.CatalogPage, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (models.CatalogPage, error)

func (f FetcherFunc) FetchCatalogPage(ctx context.Context) (models.CatalogPage, error) {
	return f(ctx)
}

// Observer is notified after every state transition, in order.
// It runs while the controller is locked and must not call back into it.
type Observer interface {
	StateChanged(state LoadState)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(state LoadState)

func (f ObserverFunc) StateChanged(state LoadState) {
	f(state)
}
