package workflow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hospos-dev/hospos/internal/api"
	"github.com/hospos-dev/hospos/internal/document"
)

type noToken struct{}

func (noToken) Token() string { return "" }

// fakeBackend is a route-by-route stand-in for the hospital API, so each test
// scripts exactly the responses its flow needs.
type fakeBackend struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newBackend(t *testing.T) *fakeBackend {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &fakeBackend{mux: mux, srv: srv}
}

func (b *fakeBackend) client() *api.Client {
	return api.NewClient(b.srv.URL, noToken{}, zerolog.Nop())
}

func (b *fakeBackend) handle(pattern string, h http.HandlerFunc) {
	b.mux.HandleFunc(pattern, h)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func testDocs(t *testing.T) *document.Generator {
	t.Helper()
	g := document.NewGenerator(t.TempDir(), document.Letterhead{Name: "City General Hospital"})
	g.Compress = false
	return g
}

// deadBackend returns a client whose server is already gone, so every call
// fails at the transport layer.
func deadBackend(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return api.NewClient(url, noToken{}, zerolog.Nop())
}
