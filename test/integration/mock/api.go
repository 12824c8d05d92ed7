package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock stands in for a third-party HTTP API. It records every request body
// and answers with the configured status and payload per method and path.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]map[string]any
	responses map[string]mockResponse
}

type mockResponse struct {
	status int
	body   any
}

// NewApiServer creates an unstarted API mock.
func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]map[string]any{},
		responses: map[string]mockResponse{},
	}
}

// Start serves the mock on a loopback port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

// Close stops the server.
func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

// GetUrl returns the base URL of the running mock.
func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(body, &request)

	a.mu.Lock()
	a.received[key] = append(a.received[key], request)
	resp, ok := a.responses[key]
	count := len(a.received[key])
	a.mu.Unlock()

	if !ok {
		resp = mockResponse{status: http.StatusOK, body: map[string]any{"id": fmt.Sprintf("mock-%d", count)}}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}

// SetResponse fixes the answer for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, body map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+" "+path] = mockResponse{status: status, body: body}
}

// Requests returns the bodies received for method and path in arrival order.
func (a *ApiMock) Requests(method, path string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]map[string]any, len(a.received[method+" "+path]))
	copy(out, a.received[method+" "+path])
	return out
}

// Reset forgets recorded requests and configured responses.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.received = map[string][]map[string]any{}
	a.responses = map[string]mockResponse{}
}
