package prestashop

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Body        string
	ContentType string
	User        string
}

// fakeShop is an in-process webservice that records everything it receives.
type fakeShop struct {
	*httptest.Server
	mux  *http.ServeMux
	mu   sync.Mutex
	seen []seenRequest
}

func newFakeShop(t *testing.T) *fakeShop {
	t.Helper()
	f := &fakeShop{mux: http.NewServeMux()}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		user, _, _ := r.BasicAuth()
		f.mu.Lock()
		f.seen = append(f.seen, seenRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			Body:        string(body),
			ContentType: r.Header.Get("Content-Type"),
			User:        user,
		})
		f.mu.Unlock()
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeShop) handle(pattern string, h http.HandlerFunc) { f.mux.HandleFunc(pattern, h) }

func (f *fakeShop) reply(pattern string, status int, v any) {
	f.handle(pattern, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, status, v) })
}

func (f *fakeShop) requests() []seenRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]seenRequest(nil), f.seen...)
}

// writes returns the POST/PUT/DELETE requests only.
func (f *fakeShop) writes() []seenRequest {
	var out []seenRequest
	for _, r := range f.requests() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeShop) client(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(Config{ShopURL: f.URL, APIKey: "TESTKEY", Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type J = map[string]any

// configRow is a configurations answer holding one row.
func configRow(id, name, value string) J {
	return J{"configurations": []any{J{"id": id, "name": name, "value": value}}}
}
