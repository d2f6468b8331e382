package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   string
}

type requestLog struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (l *requestLog) at(i int) capturedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.requests[i]
}

// newTestServer points the shared client at a server that records every
// request and answers with the given status and body.
func newTestServer(t *testing.T, status int, body string) *requestLog {
	t.Helper()
	log := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		log.mu.Lock()
		log.requests = append(log.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Body:   string(raw),
		})
		log.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	client.SetBaseURL(srv.URL)
	return log
}
