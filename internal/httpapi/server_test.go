package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dandersen/pichud/internal/digitstore"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(zap.NewNop())
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServeComputeSuccess(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/compute?digits=20", nil)
	rec := httptest.NewRecorder()
	s.serveCompute(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusSuccess, body["status"])
	require.NotNil(t, s.currentStore())
	require.Equal(t, 20, s.currentStore().NumDigits())
}

func TestServeComputeMissingDigits(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/compute", nil)
	rec := httptest.NewRecorder()
	s.serveCompute(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusFailed, body["status"])
	require.NotEmpty(t, body["error"])
}

func TestServeDigitsBeforeComputeFails(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/digits?start=0&count=5", nil)
	rec := httptest.NewRecorder()
	s.serveDigits(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusFailed, body["status"])
}

func TestServeDigitsAfterCompute(t *testing.T) {
	s := newTestServer(t)
	store, err := digitstore.Build("3.14159265358979323846")
	require.NoError(t, err)
	s.store = store

	req := httptest.NewRequest(http.MethodGet, "/digits?start=0&count=5", nil)
	rec := httptest.NewRecorder()
	s.serveDigits(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusSuccess, body["status"])
	require.Equal(t, "14159", body["digits"])
}

func TestServeSearchFindsQuery(t *testing.T) {
	s := newTestServer(t)
	store, err := digitstore.Build("3.14159265358979323846")
	require.NoError(t, err)
	s.store = store

	req := httptest.NewRequest(http.MethodGet, "/search?q=9323846", nil)
	rec := httptest.NewRecorder()
	s.serveSearch(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusSuccess, body["status"])
	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	require.Equal(t, "9323846", first["q"])
	require.Equal(t, true, first["found"])
}

func TestServeSearchTooManyQueries(t *testing.T) {
	s := newTestServer(t)
	store, err := digitstore.Build("3.14159265358979323846")
	require.NoError(t, err)
	s.store = store

	q := "q=1"
	for i := 1; i < maxQueriesPerRequest+1; i++ {
		q += "&q=1"
	}
	req := httptest.NewRequest(http.MethodGet, "/search?"+q, nil)
	rec := httptest.NewRecorder()
	s.serveSearch(rec, req)

	body := decodeJSON(t, rec)
	require.Equal(t, statusFailed, body["status"])
}

func TestHandlerRoutesRequests(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler(nil)

	req := httptest.NewRequest(http.MethodGet, "/compute?digits=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	require.Equal(t, statusSuccess, body["status"])
}
