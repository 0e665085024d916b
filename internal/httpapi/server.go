// Package httpapi exposes piengine.ComputePi and the digitstore search
// index over HTTP, adapted from the original piweb JSON query service:
// the same /piquery and /pidigits-shaped endpoints, but backed by a
// digit string this process computed itself rather than a precomputed
// file on disk.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/dandersen/pichud/internal/digitstore"
	"github.com/dandersen/pichud/internal/memestimate"
	"github.com/dandersen/pichud/internal/piengine"
)

const maxQueriesPerRequest = 20

// STATUS_* mirror piweb's response status strings.
const (
	statusFailed  = "FAILED"
	statusSuccess = "success"
)

// Server serves computed-π queries over HTTP. The zero value is not
// usable; construct with New.
type Server struct {
	log *zap.Logger

	mu    sync.RWMutex
	store *digitstore.Store
}

// New returns a Server that logs through log.
func New(log *zap.Logger) *Server {
	return &Server{log: log}
}

// Handler builds the routed, CORS-wrapped http.Handler; only /search
// responses are gzip-compressed.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/compute", s.requestLogger(http.HandlerFunc(s.serveCompute)))
	mux.Handle("/digits", s.requestLogger(http.HandlerFunc(s.serveDigits)))
	mux.Handle("/search", s.requestLogger(gziphandler.GzipHandler(http.HandlerFunc(s.serveSearch))))

	c := cors.New(cors.Options{AllowedOrigins: allowedOrigins})
	return c.Handler(mux)
}

// requestLogger stamps each request with a correlation ID and logs its
// outcome, the structured-logging replacement for piweb's per-query
// log file.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("request_id", reqID),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, results map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(results)
	if err != nil {
		http.Error(w, "internal error marshaling response", http.StatusInternalServerError)
		return
	}
	w.Write(b)
}

// serveCompute computes π to the requested precision, replacing any
// previously stored digits, and returns a summary (not the full digit
// string — callers fetch ranges via /digits).
func (s *Server) serveCompute(w http.ResponseWriter, r *http.Request) {
	results := map[string]any{"status": statusFailed}
	defer func() { writeJSON(w, results) }()

	digits, err := strconv.ParseUint(r.URL.Query().Get("digits"), 10, 64)
	if err != nil || digits == 0 {
		results["error"] = "missing or invalid digits parameter"
		return
	}
	var parallelism uint64
	if p := r.URL.Query().Get("parallelism"); p != "" {
		parallelism, _ = strconv.ParseUint(p, 10, 32)
	}

	if warn := memestimate.Warning(digits); warn != "" {
		results["warning"] = warn
	}

	start := time.Now()
	out, err := piengine.ComputePi(r.Context(), digits, uint32(parallelism), nil)
	if err != nil {
		results["error"] = err.Error()
		return
	}

	store, err := digitstore.Build(out)
	if err != nil {
		results["error"] = err.Error()
		return
	}

	s.mu.Lock()
	if s.store != nil {
		s.store.Close()
	}
	s.store = store
	s.mu.Unlock()

	results["status"] = statusSuccess
	results["digits"] = digits
	results["elapsed"] = time.Since(start).String()
}

func (s *Server) currentStore() *digitstore.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

func (s *Server) serveDigits(w http.ResponseWriter, r *http.Request) {
	results := map[string]any{"status": statusFailed}
	defer func() { writeJSON(w, results) }()

	store := s.currentStore()
	if store == nil {
		results["error"] = "no digits computed yet"
		return
	}

	start, err1 := strconv.Atoi(r.URL.Query().Get("start"))
	count, err2 := strconv.Atoi(r.URL.Query().Get("count"))
	if err1 != nil || err2 != nil {
		results["error"] = "missing or invalid start/count parameters"
		return
	}

	results["status"] = statusSuccess
	results["start"] = start
	results["count"] = count
	results["digits"] = store.GetDigits(start, count)
}

type searchResult struct {
	Query    string `json:"q"`
	Found    bool   `json:"found"`
	Position int    `json:"position,omitempty"`
	NMatches int    `json:"nMatches,omitempty"`
}

func (s *Server) serveSearch(w http.ResponseWriter, r *http.Request) {
	results := map[string]any{"status": statusFailed}
	defer func() { writeJSON(w, results) }()

	store := s.currentStore()
	if store == nil {
		results["error"] = "no digits computed yet"
		return
	}

	queries := r.URL.Query()["q"]
	if len(queries) == 0 {
		results["error"] = "missing query parameter q"
		return
	}
	if len(queries) > maxQueriesPerRequest {
		results["error"] = "too many queries"
		return
	}

	startPos := 0
	if sp := r.URL.Query().Get("start"); sp != "" {
		startPos, _ = strconv.Atoi(sp)
	}

	out := make([]searchResult, len(queries))
	for i, q := range queries {
		found, pos, n := store.Search(startPos, q)
		out[i] = searchResult{Query: q, Found: found, Position: pos, NMatches: n}
	}

	results["status"] = statusSuccess
	results["results"] = out
}

// ListenAndServe is a thin convenience wrapper kept for parity with
// the original piweb main(); CLI wiring lives in cmd/pichud.
func ListenAndServe(ctx context.Context, addr string, log *zap.Logger, allowedOrigins []string) error {
	srv := New(log)
	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler(allowedOrigins)}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
