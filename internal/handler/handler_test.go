package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"kmbeta/internal/config"
	"kmbeta/internal/kmb"
)

type fakeSource struct {
	etaCalls int
}

func (f *fakeSource) RouteIDs(context.Context) []string { return []string{"1A", "2"} }

func (f *fakeSource) Route(_ context.Context, route string, dir kmb.Direction) (kmb.Route, bool) {
	if route != "1A" {
		return kmb.Route{}, false
	}
	return kmb.Route{Route: "1A", Bound: dir.Bound(), OrigEN: "STAR FERRY", DestEN: "SAU MAU PING"}, true
}

func (f *fakeSource) RouteStops(_ context.Context, route string, _ kmb.Direction) []kmb.RouteStop {
	if route != "1A" {
		return nil
	}
	return []kmb.RouteStop{{Route: "1A", Seq: "1", Stop: "abc123"}}
}

func (f *fakeSource) Stop(_ context.Context, id string) (kmb.Stop, bool) {
	return kmb.Stop{Stop: id, NameEN: "STAR FERRY BUS TERMINUS (TS752)"}, true
}

func (f *fakeSource) ETAs(context.Context, string, string) []kmb.ETA {
	f.etaCalls++
	at := "2024-03-01T15:01:30+08:00"
	return []kmb.ETA{
		{Route: "1A", Dir: "O", Seq: 1, EtaSeq: 1, ETA: &at},
		{Route: "1A", Dir: "I", Seq: 1, EtaSeq: 1, ETA: &at},
	}
}

var testNow = time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

func newTestHandler(src *fakeSource) *Handler {
	cfg := &config.Config{RefreshInterval: time.Hour}
	h := New(src, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return testNow }
	return h
}

func TestDashboard(t *testing.T) {
	h := newTestHandler(&fakeSource{})
	req := httptest.NewRequest(http.MethodGet, "/?route=1A&open.1A=1", nil)
	rec := httptest.NewRecorder()

	h.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{"Star Ferry → Sau Mau Ping", "2 mins", `<option value="2">2</option>`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestDashboard_UnknownPath(t *testing.T) {
	h := newTestHandler(&fakeSource{})
	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestPanels(t *testing.T) {
	h := newTestHandler(&fakeSource{})
	rec := httptest.NewRecorder()
	h.Panels(rec, httptest.NewRequest(http.MethodGet, "/panels?route=1A&open.1A=1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<div id="panels">`) {
		t.Errorf("fragment should start with the panels container: %.60s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("fragment should not include the page shell")
	}
}

func TestSSEDashboard(t *testing.T) {
	src := &fakeSource{}
	h := newTestHandler(src)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/sse/dashboard?route=1A&open.1A=1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	h.SSEDashboard(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "event: panels\ndata: <div id=\"panels\">") {
		t.Errorf("unexpected stream start: %.80s", body)
	}
	if src.etaCalls != 1 {
		t.Errorf("ETA fetched %d times before the first tick, want 1", src.etaCalls)
	}
}

func TestTripUpdatesFeed(t *testing.T) {
	h := newTestHandler(&fakeSource{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /gtfs-rt/{route}/{stop}", h.TripUpdatesFeed)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gtfs-rt/1A/abc123?dir=inbound", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-protobuf" {
		t.Errorf("Content-Type = %q", ct)
	}
	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(rec.Body.Bytes(), &feed); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(feed.GetEntity()) != 1 {
		t.Fatalf("got %d entities, want 1 inbound record", len(feed.GetEntity()))
	}
	if got := feed.GetEntity()[0].GetId(); got != "1A-I-abc123-1" {
		t.Errorf("entity id = %q", got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gtfs-rt/1A/abc123?format=text", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("text Content-Type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "route_id") || !strings.Contains(body, `"1A"`) {
		t.Errorf("text feed missing route: %s", rec.Body.String())
	}
}

func TestManifest(t *testing.T) {
	h := newTestHandler(&fakeSource{})
	rec := httptest.NewRecorder()
	h.Manifest(rec, httptest.NewRequest(http.MethodGet, "/manifest.json", nil))

	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("manifest is not JSON: %v", err)
	}
	if m["start_url"] != "/" {
		t.Errorf("start_url = %v", m["start_url"])
	}
}

func TestComputeAssetVersion(t *testing.T) {
	files := fstest.MapFS{
		"static/css/main.css": {Data: []byte("body{}")},
		"static/js/app.js":    {Data: []byte("1")},
		"static/readme.txt":   {Data: []byte("ignored")},
	}
	v1 := computeAssetVersion(files)
	if len(v1) != 8 {
		t.Fatalf("version %q should be 8 hex chars", v1)
	}

	files["static/readme.txt"] = &fstest.MapFile{Data: []byte("changed")}
	if v := computeAssetVersion(files); v != v1 {
		t.Errorf("non-asset change altered version: %q != %q", v, v1)
	}

	files["static/js/app.js"] = &fstest.MapFile{Data: []byte("2")}
	if v := computeAssetVersion(files); v == v1 {
		t.Error("asset change should alter version")
	}
}
