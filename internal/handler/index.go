package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// IndexHandler serves the route sitemap and the health check.
type IndexHandler struct {
	routes chi.Routes
	db     Pinger
}

// NewIndexHandler takes the router itself so the sitemap is always the live
// route table, never a hand-maintained list.
func NewIndexHandler(routes chi.Routes, db Pinger) *IndexHandler {
	return &IndexHandler{routes: routes, db: db}
}

// HandleSitemap lists every registered "METHOD /path" pair.
//
// HTTP: GET /
// RESPONSE: {"endpoints": ["DELETE /characters/{id}", "GET /", ...]}
func (h *IndexHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	endpoints := make([]string, 0)
	err := chi.Walk(h.routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.ReplaceAll(route, "/*/", "/")
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		endpoints = append(endpoints, method+" "+route)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	sort.Strings(endpoints)
	writeJSON(w, http.StatusOK, map[string][]string{"endpoints": endpoints})
}

// HandleHealth answers 200 {"status":"ok"} when the database responds and
// 503 otherwise.
func (h *IndexHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
