package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/memory"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type downStore struct{}

func (downStore) CreateDocument(context.Context, string, domain.Document) (string, error) {
	return "", errors.New(strings.Repeat("connection refused ", 30))
}

func (downStore) GetDocuments(context.Context, string, domain.Filter, *int64) ([]domain.Document, error) {
	return nil, errors.New("connection refused")
}

func newTestRouter(store usecase.DocumentStore, inspector usecase.StoreInspector) http.Handler {
	log := logger.NewDiscardLogger()

	r := chi.NewRouter()
	NewRouter(r, log).Init(
		usecase.NewCatalogUC(store, nil, log),
		usecase.NewSubscriptionUC(store, nil, log),
		usecase.NewDiagnosticsUC(inspector, usecase.DiagnosticsSettings{StoreDriver: "memory", URLSet: true}, log),
	)

	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return v
}

func TestMessages(t *testing.T) {
	h := newTestRouter(memory.NewDocumentStore(), nil)

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "Rugby Polos Backend Running"},
		{path: "/api/hello", want: "Hello from the backend API!"},
	}

	for _, tt := range tests {
		rec := doRequest(t, h, http.MethodGet, tt.path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tt.path, rec.Code)
		}
		if got := decode[MessageResponse](t, rec); got.Message != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.path, tt.want, got.Message)
		}
		if rec.Header().Get("Content-Type") != "application/json" {
			t.Fatalf("%s: unexpected content type %q", tt.path, rec.Header().Get("Content-Type"))
		}
	}
}

func TestListProductsSeedsEmptyStore(t *testing.T) {
	store := memory.NewDocumentStore()
	h := newTestRouter(store, store)

	rec := doRequest(t, h, http.MethodGet, "/api/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	res := decode[ProductsResponse](t, rec)
	if len(res.Items) != 4 {
		t.Fatalf("expected 4 products, got %d", len(res.Items))
	}
	for _, item := range res.Items {
		if _, ok := item["_id"]; ok {
			t.Fatalf("native id leaked: %v", item)
		}
		if id, _ := item["id"].(string); id == "" {
			t.Fatalf("missing id: %v", item)
		}
	}
	if store.Count(domain.ProductCollection) != 4 {
		t.Fatalf("expected 4 seeded products, got %d", store.Count(domain.ProductCollection))
	}

	rec = doRequest(t, h, http.MethodGet, "/api/products?limit=2", "")
	if got := decode[ProductsResponse](t, rec); len(got.Items) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got.Items))
	}
}

func TestListProductsInvalidLimit(t *testing.T) {
	h := newTestRouter(memory.NewDocumentStore(), nil)

	for _, q := range []string{"abc", "-1", "1.5", ""} {
		rec := doRequest(t, h, http.MethodGet, "/api/products?limit="+q, "")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("limit=%q: expected 422, got %d", q, rec.Code)
		}
		if got := decode[ErrorResponse](t, rec); got.Code != http.StatusUnprocessableEntity {
			t.Fatalf("limit=%q: unexpected error body %+v", q, got)
		}
	}
}

func TestListProductsFallbackOnDownStore(t *testing.T) {
	h := newTestRouter(downStore{}, nil)

	first := doRequest(t, h, http.MethodGet, "/api/products", "").Body.String()
	second := doRequest(t, h, http.MethodGet, "/api/products", "").Body.String()

	if first != second {
		t.Fatalf("fallback must be identical across calls:\n%s\n%s", first, second)
	}

	var res ProductsResponse
	if err := json.Unmarshal([]byte(first), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(res.Items) != 4 {
		t.Fatalf("expected 4 default products, got %d", len(res.Items))
	}
}

func TestSubscribe(t *testing.T) {
	store := memory.NewDocumentStore()
	h := newTestRouter(store, store)

	rec := doRequest(t, h, http.MethodPost, "/api/subscribe", `{"email":"a@b.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	res := decode[SubscribeResponse](t, rec)
	if res.Status != "ok" || res.ID == "" {
		t.Fatalf("unexpected response %+v", res)
	}
	if store.Count(domain.SubscriberCollection) != 1 {
		t.Fatalf("expected 1 subscriber, got %d", store.Count(domain.SubscriberCollection))
	}
}

func TestSubscribeRejectsBadInput(t *testing.T) {
	store := memory.NewDocumentStore()
	h := newTestRouter(store, store)

	bodies := []string{
		`{"email":"not-an-email"}`,
		`{"email":""}`,
		`{}`,
		`{broken`,
		`[]`,
	}

	for _, body := range bodies {
		rec := doRequest(t, h, http.MethodPost, "/api/subscribe", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body %s: expected 422, got %d", body, rec.Code)
		}
	}

	if store.Count(domain.SubscriberCollection) != 0 {
		t.Fatal("invalid input must not reach the store")
	}
}

func TestSubscribeStoreFailure(t *testing.T) {
	h := newTestRouter(downStore{}, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/subscribe", `{"email":"a@b.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	res := decode[ErrorResponse](t, rec)
	if res.Message == "" || len([]rune(res.Message)) > 200 {
		t.Fatalf("unexpected message length %d", len([]rune(res.Message)))
	}
}

func TestDiagnostics(t *testing.T) {
	store := memory.NewDocumentStore()
	h := newTestRouter(store, store)

	rec := doRequest(t, h, http.MethodGet, "/test", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	res := decode[DiagnosticsResponse](t, rec)
	if res.Database != usecase.DatabaseWorking {
		t.Fatalf("unexpected database status %q", res.Database)
	}
	if res.DatabaseURL != usecase.EnvSet || res.DatabaseName != usecase.EnvNotSet {
		t.Fatalf("unexpected env indicators %+v", res)
	}
	if res.Collections == nil || res.StoreDriver != "memory" {
		t.Fatalf("unexpected report %+v", res)
	}
}

func TestDiagnosticsWithoutStore(t *testing.T) {
	h := newTestRouter(nil, nil)

	res := decode[DiagnosticsResponse](t, doRequest(t, h, http.MethodGet, "/test", ""))
	if res.Database != usecase.DatabaseNotInitialized {
		t.Fatalf("unexpected database status %q", res.Database)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(memory.NewDocumentStore(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("credentials must be allowed")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") != "Content-Type" {
		t.Fatalf("unexpected allow-headers %q", rec.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(memory.NewDocumentStore(), nil)

	rec := doRequest(t, h, http.MethodGet, "/", "")
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "req-42" {
		t.Fatalf("expected echoed request id, got %q", rec.Header().Get(requestIDHeader))
	}
}
