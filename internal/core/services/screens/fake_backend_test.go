package screens

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/estaraht/admin-dashboard/internal/adapters/out/backend"
	"github.com/estaraht/admin-dashboard/internal/adapters/out/logger"
	"github.com/estaraht/admin-dashboard/internal/core/ports/out"
)

// fakeBackend serves canned envelopes keyed by "METHOD /path" and records
// every request it receives.
type fakeBackend struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []recordedRequest
}

type cannedResponse struct {
	status int
	body   string
}

type recordedRequest struct {
	route string
	body  string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, responses: map[string]cannedResponse{}}
}

func (f *fakeBackend) on(route string, status int, body string) *fakeBackend {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[route] = cannedResponse{status: status, body: body}
	return f
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	route := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{route: route, body: string(raw)})
	resp, ok := f.responses[route]
	f.mu.Unlock()

	if !ok {
		resp = cannedResponse{status: http.StatusNotFound, body: `{"message":"no route ` + route + `"}`}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = io.WriteString(w, resp.body)
}

func (f *fakeBackend) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.route == route {
			n++
		}
	}
	return n
}

func (f *fakeBackend) lastBody(route string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		if f.requests[i].route == route {
			return f.requests[i].body
		}
	}
	return ""
}

func (f *fakeBackend) factory() *Factory {
	server := httptest.NewServer(f)
	f.t.Cleanup(server.Close)

	adapter := backend.NewBackendAdapterWithClient(server.URL+"/api", server.Client(), logger.NewDiscardLogger())
	return NewFactory(adapter, logger.NewDiscardLogger()).WithClock(func() time.Time { return testNow })
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func yes() out.ConfirmPort {
	return out.ConfirmFunc(func(context.Context, string) bool { return true })
}

func no() out.ConfirmPort {
	return out.ConfirmFunc(func(context.Context, string) bool { return false })
}
