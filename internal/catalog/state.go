// Package catalog holds the incremental-loading state machine behind the
// product list and the filter evaluator applied to what it has loaded.
package catalog

import (
	"math"

	"campervan_catalog/internal/models"
)

// Status is the load state of a session's product list.
type Status string

const (
	StatusReady     Status = "ready"      // idle, more items may exist
	StatusLoading   Status = "loading"    // a fetch is in flight
	StatusError     Status = "error"      // last fetch failed, retry allowed
	StatusAllLoaded Status = "all_loaded" // terminal
)

const (
	DefaultPageSize = 9
	FirstPage       = 1
)

// LoadState is a snapshot of everything the controller owns.
//
// Page is the cumulative page the list is at: the last requested slice
// covers the first Page*PageSize items of the dataset. A load from Ready
// advances it before fetching, a retry from Error reuses it.
type LoadState struct {
	Items      []models.Product `json:"-"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	Requested  int              `json:"requested"`
	Status     Status           `json:"status"`
}

// Loaded is the number of accumulated items.
func (s LoadState) Loaded() int {
	return len(s.Items)
}

// Complete reports whether every item of a known dataset is held.
func (s LoadState) Complete() bool {
	return s.TotalCount > 0 && len(s.Items) >= s.TotalCount
}

// CumulativeSize returns page*pageSize, saturating instead of overflowing.
func CumulativeSize(page, pageSize int) int {
	if page <= 0 || pageSize <= 0 {
		return 0
	}
	if page > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return page * pageSize
}

// CumulativeSlice returns the first page*pageSize items.
func CumulativeSlice(items []models.Product, page, pageSize int) []models.Product {
	n := CumulativeSize(page, pageSize)
	if n > len(items) {
		n = len(items)
	}
	return items[:n:n]
}
