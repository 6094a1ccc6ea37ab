package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campervan_catalog/internal/catalog"
	"campervan_catalog/internal/models"
	"campervan_catalog/internal/service"
)

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) catalog.View {
	t.Helper()
	var v catalog.View
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal view: %v, body=%s", err, w.Body.String())
	}
	return v
}

// openSession renders the page once and returns the embedded token.
func openSession(t *testing.T, r http.Handler, d *testDeps, path string) string {
	t.Helper()
	before := d.store.Len()
	w := do(t, r, http.MethodGet, path, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("page status=%d, body=%s", w.Code, w.Body.String())
	}
	if d.store.Len() != before+1 {
		t.Fatalf("expected a new session, store has %d", d.store.Len())
	}
	body := w.Body.String()
	const attr = `data-token="`
	i := strings.Index(body, attr)
	if i < 0 {
		t.Fatalf("token not embedded in page")
	}
	rest := body[i+len(attr):]
	return rest[:strings.IndexByte(rest, '"')]
}

func TestHealth(t *testing.T) {
	s, _ := newTestDeps(20)
	w := do(t, newTestRouter(s), http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), statusOK) {
		t.Fatalf("health status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAPIData(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)

	w := do(t, r, http.MethodGet, "/api/data", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var page models.CatalogPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Count != 20 || len(page.Items) != 20 {
		t.Fatalf("expected full dataset, got count=%d items=%d", page.Count, len(page.Items))
	}

	d.provider.setErr(service.ErrProviderFailure)
	w = do(t, r, http.MethodGet, "/api/data", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body on failure, got %q", w.Body.String())
	}
}

func TestIndex_RendersFirstBatch(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)

	w := do(t, r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	if n := strings.Count(body, `class="product"`); n != 9 {
		t.Fatalf("expected 9 products, got %d", n)
	}
	for _, want := range []string{`href="./?page=2"`, catalog.LabelLoadMore, "1 200 Kč", "Integrál"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if d.listing.lastPage != 1 {
		t.Fatalf("expected page 1, got %d", d.listing.lastPage)
	}
}

func TestIndex_PageQuerySeedsCursor(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)

	token := openSession(t, r, d, "/?page=2")
	v := decodeView(t, do(t, r, http.MethodGet, "/api/v1/session", token, nil))
	if v.Page != 2 || v.Loaded != 18 {
		t.Fatalf("expected page=2 loaded=18, got page=%d loaded=%d", v.Page, v.Loaded)
	}

	for _, raw := range []string{"/?page=abc", "/?page=0", "/?page=-1"} {
		openSession(t, r, d, raw)
		if d.listing.lastPage != 1 {
			t.Fatalf("%s: expected fallback to page 1, got %d", raw, d.listing.lastPage)
		}
	}
}

func TestIndex_InitialFailureRendersRetry(t *testing.T) {
	s, d := newTestDeps(20)
	d.listing.err = service.ErrProviderFailure
	r := newTestRouter(s)

	w := do(t, r, http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, catalog.MessageLoadError) || !strings.Contains(body, catalog.LabelRetry) {
		t.Fatalf("expected error message and retry button, got:\n%s", body)
	}
	if strings.Contains(body, `class="product"`) {
		t.Fatal("no products expected")
	}
}

func TestIndex_FilterQuery(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)

	token := openSession(t, r, d, "/?vehicleType=Alcove&minPrice=1+000")
	v := decodeView(t, do(t, r, http.MethodGet, "/api/v1/session", token, nil))
	if !v.Filters.VehicleTypes[models.VehicleAlcove] || v.Filters.VehicleTypes[models.VehicleCampervan] {
		t.Fatalf("unexpected vehicle types: %+v", v.Filters.VehicleTypes)
	}
	if v.Filters.MinPrice == nil || *v.Filters.MinPrice != 1000 {
		t.Fatalf("expected minPrice 1000, got %v", v.Filters.MinPrice)
	}
	if len(v.Items) != 2 {
		t.Fatalf("expected 2 alcoves among the first 9, got %d", len(v.Items))
	}
}

func TestIndex_TokenFailure(t *testing.T) {
	s, d := newTestDeps(20)
	d.tokens.issueErr = errors.New("no key")

	w := do(t, newTestRouter(s), http.MethodGet, "/", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), errIssueToken) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSessionAPI_LoadUntilAllLoaded(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)
	token := openSession(t, r, d, "/")

	v := decodeView(t, do(t, r, http.MethodPost, "/api/v1/session/load", token, nil))
	if v.Status != catalog.StatusReady || v.Loaded != 18 || v.Button.Href != "./?page=3" {
		t.Fatalf("after first load: %+v", v.Button)
	}

	v = decodeView(t, do(t, r, http.MethodPost, "/api/v1/session/load", token, nil))
	if v.Status != catalog.StatusAllLoaded || v.Loaded != 20 || v.Button.Visible {
		t.Fatalf("expected all loaded with hidden button, got status=%s loaded=%d", v.Status, v.Loaded)
	}

	w := do(t, r, http.MethodPost, "/api/v1/session/load", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("load in terminal state should be a 200 no-op, got %d", w.Code)
	}
}

func TestSessionAPI_LoadFailureThenRetry(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)
	token := openSession(t, r, d, "/")

	d.provider.setErr(service.ErrProviderFailure)
	w := do(t, r, http.MethodPost, "/api/v1/session/load", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	v := decodeView(t, w)
	if v.Status != catalog.StatusError || v.Loaded != 9 || v.Button.Label != catalog.LabelRetry {
		t.Fatalf("expected error with 9 items kept, got status=%s loaded=%d label=%s", v.Status, v.Loaded, v.Button.Label)
	}

	d.provider.setErr(nil)
	v = decodeView(t, do(t, r, http.MethodPost, "/api/v1/session/load", token, nil))
	if v.Status != catalog.StatusReady || v.Loaded != 18 || v.Page != 2 {
		t.Fatalf("retry should land on page 2 with 18 items, got page=%d loaded=%d", v.Page, v.Loaded)
	}
}

func TestSessionAPI_Filters(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)
	token := openSession(t, r, d, "/")

	v := decodeView(t, do(t, r, http.MethodPut, "/api/v1/session/filters", token,
		`{"minPrice":"1 500","maxPrice":2000,"instantBookableOnly":true}`))
	// of the first 9 only van 02 (1700 Kč, instant) qualifies
	for _, it := range v.Items {
		p := it.Product
		if p.Price < 1500 || p.Price > 2000 || !p.InstantBookable {
			t.Fatalf("item outside filter: %+v", p)
		}
	}
	if len(v.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(v.Items))
	}

	v = decodeView(t, do(t, r, http.MethodPost, "/api/v1/session/filters/vehicle-type", token,
		map[string]any{"id": models.VehicleBuiltIn, "checked": true}))
	if got := v.Filters.VehicleTypes; !got[models.VehicleBuiltIn] || got[models.VehicleAlcove] {
		t.Fatalf("unexpected types after toggle: %+v", got)
	}
	if v.Filters.MinPrice == nil {
		t.Fatal("toggle must keep the price bounds")
	}

	// wholesale replace clears everything
	v = decodeView(t, do(t, r, http.MethodPut, "/api/v1/session/filters", token, `{}`))
	if len(v.Items) != 9 {
		t.Fatalf("expected all 9 items after clearing, got %d", len(v.Items))
	}
}

func TestSessionAPI_BadBodies(t *testing.T) {
	s, d := newTestDeps(20)
	r := newTestRouter(s)
	token := openSession(t, r, d, "/")

	cases := []struct {
		name, method, path, body string
	}{
		{"filters_not_json", http.MethodPut, "/api/v1/session/filters", "{"},
		{"filters_price_type", http.MethodPut, "/api/v1/session/filters", `{"minPrice":true}`},
		{"toggle_missing_id", http.MethodPost, "/api/v1/session/filters/vehicle-type", `{"checked":true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
			}
			if !strings.HasPrefix(errorOf(t, w), errInvalidBodyPref) {
				t.Fatalf("unexpected error: %s", w.Body.String())
			}
		})
	}
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body.Error
}
