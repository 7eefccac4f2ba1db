package handler

import (
	"net/http"

	"kmbeta/internal/dashboard"
	"kmbeta/internal/templates"
)

// Dashboard serves the full dashboard for the selection in the query string.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sel := dashboard.ParseSelection(r.URL.Query())
	view := h.builder.Build(r.Context(), sel, h.now())

	data := templates.DashboardData{
		Page: templates.Page{
			Title:          "KMB ETA",
			Lang:           string(view.Selection.Lang),
			AssetVersion:   h.version,
			RefreshSeconds: h.refreshSeconds(),
		},
		View: view,
	}
	h.render(w, r, templates.DashboardPage(data), "dashboard page")
}

// Panels serves only the panels fragment, for clients that poll instead of
// holding an SSE stream open.
func (h *Handler) Panels(w http.ResponseWriter, r *http.Request) {
	sel := dashboard.ParseSelection(r.URL.Query())
	view := h.builder.Build(r.Context(), sel, h.now())
	w.Header().Set("Cache-Control", "no-store")
	h.render(w, r, templates.Panels(view), "panels")
}
