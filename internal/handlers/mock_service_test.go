package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/models"
	"campervan_catalog/internal/service"
	"campervan_catalog/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockProvider struct {
	mu    sync.Mutex
	items []models.Product
	err   error
	calls int
}

func (m *mockProvider) FetchCatalogPage(ctx context.Context) (models.CatalogPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return models.CatalogPage{}, m.err
	}
	return models.CatalogPage{Count: len(m.items), Items: m.items}, nil
}

func (m *mockProvider) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

type mockListing struct {
	items    []models.Product
	err      error
	lastPage int
}

func (m *mockListing) InitialPage(ctx context.Context, page int) (models.CatalogPage, error) {
	m.lastPage = page
	if m.err != nil {
		return models.CatalogPage{}, m.err
	}
	return models.CatalogPage{
		Count: len(m.items),
		Items: catalog.CumulativeSlice(m.items, page, testPageSize),
	}, nil
}

const tokenPrefix = "tok-"

type mockTokens struct {
	issueErr       error
	lastParseToken string
}

func (m *mockTokens) Issue(sessionID string) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	return tokenPrefix + sessionID, nil
}

func (m *mockTokens) Parse(token string) (string, error) {
	m.lastParseToken = token
	id, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok || id == "" {
		return "", service.ErrInvalidToken
	}
	return id, nil
}

// ---- Shared Test Helpers ----

const testPageSize = 9

func testProducts(n int) []models.Product {
	types := []string{models.VehicleCampervan, models.VehicleIntergrated, models.VehicleBuiltIn, models.VehicleAlcove}
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			Location:           "Brno",
			Name:               fmt.Sprintf("Van %02d", i),
			PassengersCapacity: 4,
			SleepCapacity:      2,
			Price:              float64(1200 + 250*i),
			VehicleType:        types[i%len(types)],
			InstantBookable:    i%2 == 0,
			Pictures:           []string{fmt.Sprintf("https://cdn.example.test/%02d.jpg", i)},
		}
	}
	return out
}

type testDeps struct {
	provider *mockProvider
	listing  *mockListing
	tokens   *mockTokens
	store    *session.Store
}

// newTestDeps backs the session store with the mock provider, like the
// in-process wiring does.
func newTestDeps(n int) (*service.Service, *testDeps) {
	items := testProducts(n)
	d := &testDeps{
		provider: &mockProvider{items: items},
		listing:  &mockListing{items: items},
		tokens:   &mockTokens{},
	}
	d.store = session.NewStore(d.provider, session.Config{PageSize: testPageSize})
	s := &service.Service{
		Provider: d.provider,
		Listing:  d.listing,
		Tokens:   d.tokens,
		Sessions: d.store,
		Sweeper:  d.store,
	}
	return s, d
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// firstPage is the server-rendered first batch of an n-item dataset.
func firstPage(n int) *models.CatalogPage {
	items := testProducts(n)
	return &models.CatalogPage{Count: n, Items: items[:min(n, testPageSize)]}
}
