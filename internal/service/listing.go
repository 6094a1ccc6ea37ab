package service

import (
	"context"
	"strconv"
	"strings"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/models"
)

// ListingService is the server-side path used while rendering the page.
type ListingService struct {
	provider Provider
	pageSize int
}

func NewListingService(provider Provider, pageSize int) *ListingService {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &ListingService{provider: provider, pageSize: pageSize}
}

// ParsePage reads the ?page= query value. Anything but a positive integer
// falls back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < catalog.FirstPage {
		return catalog.FirstPage
	}
	return page
}

// InitialPage fetches the dataset and keeps the first page*pageSize items.
func (s *ListingService) InitialPage(ctx context.Context, page int) (models.CatalogPage, error) {
	data, err := s.provider.FetchCatalogPage(ctx)
	if err != nil {
		return models.CatalogPage{}, err
	}
	return models.CatalogPage{
		Count: data.Count,
		Items: catalog.CumulativeSlice(data.Items, page, s.pageSize),
	}, nil
}

func (s *ListingService) PageSize() int {
	return s.pageSize
}
