package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is one request seen by a TMDBServer.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

type cannedResponse struct {
	status int
	body   any
}

// TMDBServer is an httptest server answering canned JSON per method and path.
// Unknown routes answer 404 with a TMDB-style error body.
type TMDBServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]cannedResponse
	requests []RecordedRequest
}

// NewTMDBServer starts a fake TMDB server that is closed when the test ends.
func NewTMDBServer(t *testing.T) *TMDBServer {
	t.Helper()

	s := &TMDBServer{routes: make(map[string]cannedResponse)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers the response for method + path (path without query).
func (s *TMDBServer) Handle(method, path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns a copy of the requests received so far.
func (s *TMDBServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests for method + path.
func (s *TMDBServer) RequestsTo(method, path string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (s *TMDBServer) serve(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
	}
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	resp, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":        false,
			"status_code":    34,
			"status_message": "The resource you requested could not be found.",
		})
		return
	}

	w.WriteHeader(resp.status)
	if resp.body != nil {
		_ = json.NewEncoder(w).Encode(resp.body)
	}
}
