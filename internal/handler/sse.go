package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"kmbeta/internal/dashboard"
	"kmbeta/internal/templates"
)

// SSEDashboard streams re-rendered panels for the selection in the query
// string. The client listens for "panels" events and swaps the HTML.
func (h *Handler) SSEDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sel := dashboard.ParseSelection(r.URL.Query())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	// Send initial data immediately
	h.sendPanelsEvent(ctx, w, flusher, sel)

	ticker := time.NewTicker(h.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.sendPanelsEvent(ctx, w, flusher, sel)
		case <-ctx.Done():
			return
		}
	}
}

// sendPanelsEvent runs one render pass and sends it as an SSE event.
func (h *Handler) sendPanelsEvent(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sel dashboard.Selection) {
	view := h.builder.Build(ctx, sel, h.now())

	var buf bytes.Buffer
	if err := templates.Panels(view).Render(ctx, &buf); err != nil {
		h.logger.Error("rendering SSE panels", "error", err)
		return
	}

	// SSE format: event name, then data lines (each line prefixed with "data: ")
	fmt.Fprintf(w, "event: panels\n")
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprintf(w, "\n")
	flusher.Flush()
}
