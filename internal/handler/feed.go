package handler

import (
	"net/http"

	"kmbeta/internal/eta"
	"kmbeta/internal/kmb"
	"kmbeta/internal/realtime"
)

// TripUpdatesFeed serves the live ETAs of one route at one stop as a
// GTFS-Realtime feed. ?dir=inbound selects the direction and ?format=text
// returns prototext instead of binary protobuf.
func (h *Handler) TripUpdatesFeed(w http.ResponseWriter, r *http.Request) {
	route := r.PathValue("route")
	stopID := r.PathValue("stop")
	q := r.URL.Query()
	dir := kmb.ParseDirection(q.Get("dir"))
	text := q.Get("format") == "text"

	records := eta.ForDirection(h.src.ETAs(r.Context(), stopID, route), dir)
	feed := realtime.TripUpdates(route, stopID, dir, records, h.now())

	data, err := realtime.Marshal(feed, text)
	if err != nil {
		h.logger.Error("encoding trip updates", "route", route, "stop", stopID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if text {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/x-protobuf")
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}
