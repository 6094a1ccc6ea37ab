package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campervan_catalog/internal/models"
)

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 5 * time.Second

var (
	// ErrBusy is returned when a load is requested while one is in flight.
	ErrBusy = errors.New("catalog: load already in flight")
	// ErrAllLoaded is returned when a load is requested in the terminal state.
	ErrAllLoaded = errors.New("catalog: all items loaded")
	// ErrEmptyResult is returned when a fetch succeeds with zero items.
	ErrEmptyResult = errors.New("catalog: fetch returned no items")
)

type Config struct {
	PageSize int
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Controller drives LoadState through Ready, Loading, Error and AllLoaded.
// At most one fetch is in flight; loads requested meanwhile are ignored.
type Controller struct {
	mu        sync.Mutex
	fetcher   Fetcher
	cfg       Config
	state     LoadState
	observers []Observer
}

// NewController seeds the state from the server-rendered first batch.
// A nil or empty initial page starts the controller in Error.
func NewController(fetcher Fetcher, initial *models.CatalogPage, page int, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	if page < FirstPage {
		page = FirstPage
	}
	c := &Controller{
		fetcher: fetcher,
		cfg:     cfg,
		state: LoadState{
			Page:      page,
			Requested: CumulativeSize(page, cfg.PageSize),
			Status:    StatusError,
		},
	}
	if initial == nil {
		return c
	}

	items := CumulativeSlice(initial.Items, page, cfg.PageSize)
	total := effectiveTotal(*initial)
	if len(items) > total {
		items = items[:total:total]
	}
	if len(items) == 0 {
		return c
	}
	c.state.Items = append([]models.Product(nil), items...)
	c.state.TotalCount = total
	c.state.Status = StatusReady
	if c.state.Complete() {
		c.state.Status = StatusAllLoaded
	}
	return c
}

// Subscribe registers o for every subsequent transition.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Snapshot returns the current state. Items is capped so appends made
// later are invisible to the holder.
func (c *Controller) Snapshot() LoadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Load requests the next batch (Ready) or retries the failed one (Error).
// It blocks until the fetch settles or the timeout fires. ErrBusy and
// ErrAllLoaded mean the call was a no-op.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	switch c.state.Status {
	case StatusLoading:
		c.mu.Unlock()
		return ErrBusy
	case StatusAllLoaded:
		c.mu.Unlock()
		return ErrAllLoaded
	case StatusReady:
		c.state.Page++
	}
	c.state.Status = StatusLoading
	c.state.Requested = CumulativeSize(c.state.Page, c.cfg.PageSize)
	want := c.state.Requested
	c.notifyLocked()
	c.mu.Unlock()

	page, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Status = StatusError
		c.notifyLocked()
		return err
	}
	c.applyLocked(page, want)
	c.notifyLocked()
	return nil
}

func (c *Controller) fetch(ctx context.Context) (models.CatalogPage, error) {
	fctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	page, err := c.fetcher.FetchCatalogPage(fctx)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("fetch catalog page: %w", err)
	}
	// a response that raced the deadline is discarded
	if err := fctx.Err(); err != nil {
		return models.CatalogPage{}, fmt.Errorf("fetch catalog page: %w", err)
	}
	if len(page.Items) == 0 {
		return models.CatalogPage{}, ErrEmptyResult
	}
	return page, nil
}

// applyLocked appends the items between the current length and want.
// Zero newly revealed items is the provider's exhaustion signal, so the
// known total collapses to what is held.
func (c *Controller) applyLocked(page models.CatalogPage, want int) {
	total := effectiveTotal(page)
	limit := min(want, len(page.Items), total)

	prev := len(c.state.Items)
	if limit <= prev {
		c.state.TotalCount = prev
		c.state.Status = StatusAllLoaded
		return
	}

	c.state.Items = append(c.state.Items, page.Items[prev:limit]...)
	c.state.TotalCount = total
	c.state.Status = StatusReady
	if c.state.Complete() {
		c.state.Status = StatusAllLoaded
	}
}

func (c *Controller) snapshotLocked() LoadState {
	st := c.state
	n := len(st.Items)
	st.Items = st.Items[:n:n]
	return st
}

func (c *Controller) notifyLocked() {
	if len(c.observers) == 0 {
		return
	}
	st := c.snapshotLocked()
	for _, o := range c.observers {
		o.StateChanged(st)
	}
}

// effectiveTotal trusts count unless it is missing.
func effectiveTotal(page models.CatalogPage) int {
	if page.Count <= 0 {
		return len(page.Items)
	}
	return page.Count
}
