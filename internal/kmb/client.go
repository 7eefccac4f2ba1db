package kmb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
)

// Fetcher returns the "data" value of an upstream response, or nil when
// there is nothing to return. Implementations never fail loudly.
type Fetcher interface {
	Fetch(ctx context.Context, url string) json.RawMessage
}

// HTTPFetcher performs GET requests against the upstream API.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher using the default transport settings.
func NewHTTPFetcher(logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{},
		logger: logger,
	}
}

// Fetch returns the "data" field of the JSON body on HTTP 200. Any other
// status, a transport error or an undecodable body yields nil.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) json.RawMessage {
	data, err := f.doGet(ctx, url)
	if err != nil {
		f.logger.Warn("upstream fetch failed", "url", url, "error", err)
		return nil
	}
	return data
}

func (f *HTTPFetcher) doGet(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return nil, nil
	}
	return envelope.Data, nil
}

// Client is the typed view of the KMB API. Semi-static endpoints go through
// the stable policy, live ETAs through the fresh one.
type Client struct {
	endpoints Endpoints
	stable    Fetcher
	fresh     Fetcher
	logger    *slog.Logger
}

// NewClient creates a Client. stable is normally a *Persistent and fresh a
// PassThrough over the same HTTPFetcher.
func NewClient(endpoints Endpoints, stable, fresh Fetcher, logger *slog.Logger) *Client {
	return &Client{
		endpoints: endpoints,
		stable:    stable,
		fresh:     fresh,
		logger:    logger,
	}
}

// Routes fetches the full route catalog.
func (c *Client) Routes(ctx context.Context) []Route {
	return decodeList[Route](c.logger, c.stable.Fetch(ctx, c.endpoints.RouteList()), "routes")
}

// RouteIDs returns the sorted unique route identifiers of the catalog.
func (c *Client) RouteIDs(ctx context.Context) []string {
	return UniqueRouteIDs(c.Routes(ctx))
}

// Route fetches route detail for one direction. The bool is false when the
// upstream has no such route.
func (c *Client) Route(ctx context.Context, route string, dir Direction) (Route, bool) {
	var r Route
	data := c.stable.Fetch(ctx, c.endpoints.Route(route, dir))
	if len(data) == 0 {
		return r, false
	}
	if err := json.Unmarshal(data, &r); err != nil {
		c.logger.Warn("decode route", "route", route, "dir", dir, "error", err)
		return r, false
	}
	if r.Route == "" {
		return r, false
	}
	return r, true
}

// RouteStops fetches the ordered stop list of a route+direction.
func (c *Client) RouteStops(ctx context.Context, route string, dir Direction) []RouteStop {
	return decodeList[RouteStop](c.logger, c.stable.Fetch(ctx, c.endpoints.RouteStops(route, dir)), "route stops")
}

// Stop fetches stop detail.
func (c *Client) Stop(ctx context.Context, stopID string) (Stop, bool) {
	var s Stop
	data := c.stable.Fetch(ctx, c.endpoints.Stop(stopID))
	if len(data) == 0 {
		return s, false
	}
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Warn("decode stop", "stop", stopID, "error", err)
		return s, false
	}
	if s.Stop == "" {
		return s, false
	}
	return s, true
}

// ETAs fetches live predictions for a stop+route, all directions included.
func (c *Client) ETAs(ctx context.Context, stopID, route string) []ETA {
	return decodeList[ETA](c.logger, c.fresh.Fetch(ctx, c.endpoints.ETA(stopID, route)), "etas")
}

// decodeList treats an undecodable payload the same as an empty one.
func decodeList[T any](logger *slog.Logger, data json.RawMessage, what string) []T {
	if len(data) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("decode list", "what", what, "error", err)
		return nil
	}
	return out
}

// UniqueRouteIDs returns the sorted set of route identifiers.
func UniqueRouteIDs(routes []Route) []string {
	seen := make(map[string]bool, len(routes))
	var ids []string
	for _, r := range routes {
		if r.Route == "" || seen[r.Route] {
			continue
		}
		seen[r.Route] = true
		ids = append(ids, r.Route)
	}
	sort.Strings(ids)
	return ids
}
