package metrics

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/latinogino/prestashop-mcp/internal/db"
)

// CallLister serves /calls; the journal implements it.
type CallLister interface {
	Recent(ctx context.Context, n int) ([]db.ToolCall, error)
}

// Router is the ops listener: /health, /metrics and, with a journal, /calls.
func Router(m *Metrics, calls CallLister) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	if calls != nil {
		r.Get("/calls", func(w http.ResponseWriter, req *http.Request) {
			n, err := strconv.Atoi(req.URL.Query().Get("limit"))
			if err != nil || n <= 0 {
				n = 50
			}
			n = min(n, 500)
			rows, err := calls.Recent(req.Context(), n)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(rows)
		})
	}
	return r
}
