package handler

import (
	"fmt"
	"net/http"
)

// Manifest serves the web app manifest.
func (h *Handler) Manifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/manifest+json")
	fmt.Fprint(w, `{
  "name": "KMB ETA",
  "short_name": "KMB ETA",
  "description": "Live arrival times for KMB bus routes",
  "start_url": "/",
  "scope": "/",
  "display": "standalone",
  "orientation": "any",
  "background_color": "#ffffff",
  "theme_color": "#b71c1c",
  "categories": ["navigation", "transportation"]
}`)
}
