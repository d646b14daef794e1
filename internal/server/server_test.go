package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emphz/rfqcart/internal/cart"
	"github.com/emphz/rfqcart/internal/catalog"
	"github.com/emphz/rfqcart/internal/quote"
	"github.com/emphz/rfqcart/internal/storage"
	"github.com/emphz/rfqcart/pkg/types"
)

type stubSubmitter struct{ err error }

func (s stubSubmitter) Submit(_ context.Context, req types.QuoteRequest) (types.QuoteReceipt, error) {
	if s.err != nil {
		return types.QuoteReceipt{}, s.err
	}
	return types.QuoteReceipt{QuoteID: "q-test", SubmittedAt: time.Now(), ItemCount: len(req.Items)}, nil
}

func newTestServer(t *testing.T) (*Server, *cart.Store) {
	t.Helper()
	store := cart.NewStore(nil)
	svc := quote.NewService(store, stubSubmitter{}, nil)
	return New(store, catalog.Default(), svc, nil), store
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func cartCookie(t *testing.T, rec *httptest.ResponseRecorder) []types.LineItem {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == types.CartKey {
			assert.Equal(t, "/", c.Path)
			assert.Equal(t, int(storage.CookieMaxAge/time.Second), c.MaxAge)
			value, err := storage.CookieValue(c)
			require.NoError(t, err)
			items, err := cart.Decode(value)
			require.NoError(t, err)
			return items
		}
	}
	t.Fatalf("response has no %s cookie", types.CartKey)
	return nil
}

func TestAddItemMergesAndSetsCookie(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/cart/items", `{"productId":"grp-enclosure-600","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/cart/items", `{"productId":"grp-enclosure-600","quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.Items(), cartCookie(t, rec))

	body := decode[CartResponse](t, rec)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 5, body.Items[0].Quantity)
	assert.Equal(t, "GRP Wall-Mount Enclosure 600", body.Items[0].ProductName)
	assert.Equal(t, 5, body.Count)
}

func TestAddItemDefaultsToOneUnit(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/cart/items", `{"productId":"junction-box-150"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.Count())
}

func TestAddItemErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed body", body: `{`, want: http.StatusBadRequest},
		{name: "unknown product", body: `{"productId":"nope"}`, want: http.StatusNotFound},
		{name: "zero quantity", body: `{"productId":"junction-box-150","quantity":0}`, want: http.StatusBadRequest},
		{name: "negative quantity", body: `{"productId":"junction-box-150","quantity":-1}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestServer(t)
			rec := do(t, s, http.MethodPost, "/api/cart/items", tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Empty(t, store.Items())
		})
	}
}

func TestRemoveAndClear(t *testing.T) {
	s, store := newTestServer(t)
	require.NoError(t, store.AddItem(types.LineItem{ProductID: "p1", ProductName: "A", Quantity: 1}))
	require.NoError(t, store.AddItem(types.LineItem{ProductID: "p2", ProductName: "B", Quantity: 2}))

	rec := do(t, s, http.MethodDelete, "/api/cart/items/p2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.LineItem{{ProductID: "p1", ProductName: "A", Quantity: 1}}, decode[CartResponse](t, rec).Items)

	rec = do(t, s, http.MethodDelete, "/api/cart/items/p2", "")
	require.Equal(t, http.StatusOK, rec.Code, "removing an absent item is not an error")

	rec = do(t, s, http.MethodDelete, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[CartResponse](t, rec).Items)
	assert.Empty(t, cartCookie(t, rec))
}

func TestListProductsFilters(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]types.Product](t, rec)
	assert.Equal(t, catalog.Default().Products(), all)

	rec = do(t, s, http.MethodGet, "/api/products?category=Junction+Boxes&feature=ATEX%2FEx-Proof", "")
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decode[[]types.Product](t, rec)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ex-junction-box-200", filtered[0].ID)
}

func TestGetProduct(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/products/grp-enclosure-600", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[ProductResponse](t, rec)
	assert.Equal(t, "grp-enclosure-600", body.ID)
	assert.Contains(t, body.DescriptionHTML, "<strong>SMC/GRP</strong>")

	rec = do(t, s, http.MethodGet, "/api/products/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, catalogURL, decode[ErrorResponse](t, rec).CatalogURL)
}

func TestCategoriesAndFeatures(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.CategoryAll, decode[[]string](t, rec)[0])

	rec = do(t, s, http.MethodGet, "/api/features", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalog.FeatureTags(), decode[[]string](t, rec))
}

func TestCompare(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/compare?ids=grp-enclosure-600,junction-box-150", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cmp := decode[catalog.Comparison](t, rec)
	require.Len(t, cmp.Products, 2)
	assert.Equal(t, "Dimensions", cmp.Labels[0])

	rec = do(t, s, http.MethodGet, "/api/compare?ids=grp-enclosure-600,grp-enclosure-400,junction-box-150,cable-tray-frp", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, catalog.CapacityNotice, decode[ErrorResponse](t, rec).Notice)

	rec = do(t, s, http.MethodGet, "/api/compare?ids=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitQuote(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/quotes", `{"name":"Ana","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart")

	require.NoError(t, store.AddItem(types.LineItem{ProductID: "p1", ProductName: "A", Quantity: 1}))

	rec = do(t, s, http.MethodPost, "/api/quotes", `{"name":"Ana","email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "invalid contact")

	rec = do(t, s, http.MethodPost, "/api/quotes", `{"name":"Ana","email":"ana@example.com","notes":"asap"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, cartCookie(t, rec))
	assert.Equal(t, "q-test", decode[types.QuoteReceipt](t, rec).QuoteID)
	assert.Empty(t, store.Items())
}

func TestSubmitQuoteFailureKeepsCart(t *testing.T) {
	store := cart.NewStore(nil)
	require.NoError(t, store.AddItem(types.LineItem{ProductID: "p1", ProductName: "A", Quantity: 1}))
	svc := quote.NewService(store, stubSubmitter{err: assert.AnError}, nil)
	s := New(store, catalog.Default(), svc, nil)

	rec := do(t, s, http.MethodPost, "/api/quotes", `{"name":"Ana","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Len(t, store.Items(), 1)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/cart")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
