package kmb

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public KMB ETA API.
const DefaultBaseURL = "https://data.etabus.gov.hk/v1/transport/kmb"

// Endpoints builds request URLs from the fixed upstream templates.
type Endpoints struct {
	base string
}

// NewEndpoints returns URL builders rooted at baseURL.
func NewEndpoints(baseURL string) Endpoints {
	return Endpoints{base: strings.TrimRight(baseURL, "/")}
}

// RouteList is GET /route/.
func (e Endpoints) RouteList() string {
	return e.base + "/route/"
}

// Route is GET /route/{route}/{direction}/1.
func (e Endpoints) Route(route string, dir Direction) string {
	return fmt.Sprintf("%s/route/%s/%s/1", e.base, url.PathEscape(route), dir)
}

// RouteStops is GET /route-stop/{route}/{direction}/1.
func (e Endpoints) RouteStops(route string, dir Direction) string {
	return fmt.Sprintf("%s/route-stop/%s/%s/1", e.base, url.PathEscape(route), dir)
}

// Stop is GET /stop/{stop_id}.
func (e Endpoints) Stop(stopID string) string {
	return fmt.Sprintf("%s/stop/%s", e.base, url.PathEscape(stopID))
}

// ETA is GET /eta/{stop_id}/{route}/1.
func (e Endpoints) ETA(stopID, route string) string {
	return fmt.Sprintf("%s/eta/%s/%s/1", e.base, url.PathEscape(stopID), url.PathEscape(route))
}
