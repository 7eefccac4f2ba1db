package dashboard

import (
	"net/url"

	"kmbeta/internal/i18n"
	"kmbeta/internal/kmb"
)

// Selection is everything the user has chosen. It is carried in the page
// URL, so a request always describes the full state.
type Selection struct {
	Lang   i18n.Language
	Routes []string
	Dirs   map[string]kmb.Direction
	Stops  map[string]string
	Open   map[string]bool
}

// NewSelection returns an empty selection in the default language.
func NewSelection() Selection {
	return Selection{
		Lang:  i18n.Default,
		Dirs:  make(map[string]kmb.Direction),
		Stops: make(map[string]string),
		Open:  make(map[string]bool),
	}
}

// ParseSelection reads a selection from query parameters:
//
//	lang=tc&route=1A&route=2&dir.1A=inbound&stop.1A=ABC&open.1A=1
func ParseSelection(q url.Values) Selection {
	s := NewSelection()
	s.Lang = i18n.Parse(q.Get("lang"))

	seen := make(map[string]bool)
	for _, r := range q["route"] {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		s.Routes = append(s.Routes, r)
	}

	for _, r := range s.Routes {
		s.Dirs[r] = kmb.ParseDirection(q.Get("dir." + r))
		if stop := q.Get("stop." + r); stop != "" {
			s.Stops[r] = stop
		}
		s.Open[r] = q.Get("open."+r) == "1"
	}
	return s
}

// Direction returns the chosen direction of route, outbound by default.
func (s Selection) Direction(route string) kmb.Direction {
	if d, ok := s.Dirs[route]; ok {
		return d
	}
	return kmb.Outbound
}

// Query encodes the selection back into query parameters. Defaults are
// omitted so URLs stay short.
func (s Selection) Query() url.Values {
	q := url.Values{}
	if s.Lang != "" && s.Lang != i18n.Default {
		q.Set("lang", string(s.Lang))
	}
	for _, r := range s.Routes {
		q.Add("route", r)
		if s.Direction(r) == kmb.Inbound {
			q.Set("dir."+r, string(kmb.Inbound))
		}
		if stop := s.Stops[r]; stop != "" {
			q.Set("stop."+r, stop)
		}
		if s.Open[r] {
			q.Set("open."+r, "1")
		}
	}
	return q
}

// Href is the dashboard URL for this selection.
func (s Selection) Href() string {
	if q := s.Query().Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}

func (s Selection) clone() Selection {
	c := Selection{
		Lang:   s.Lang,
		Routes: append([]string(nil), s.Routes...),
		Dirs:   make(map[string]kmb.Direction, len(s.Dirs)),
		Stops:  make(map[string]string, len(s.Stops)),
		Open:   make(map[string]bool, len(s.Open)),
	}
	for k, v := range s.Dirs {
		c.Dirs[k] = v
	}
	for k, v := range s.Stops {
		c.Stops[k] = v
	}
	for k, v := range s.Open {
		c.Open[k] = v
	}
	return c
}

// WithLang returns a copy with the language changed.
func (s Selection) WithLang(l i18n.Language) Selection {
	c := s.clone()
	c.Lang = l
	return c
}

// WithDirection returns a copy with route's direction changed. The chosen
// stop belongs to the old direction, so it is cleared.
func (s Selection) WithDirection(route string, d kmb.Direction) Selection {
	c := s.clone()
	c.Dirs[route] = d
	delete(c.Stops, route)
	return c
}

// ToggleDirection flips route between outbound and inbound.
func (s Selection) ToggleDirection(route string) Selection {
	if s.Direction(route) == kmb.Inbound {
		return s.WithDirection(route, kmb.Outbound)
	}
	return s.WithDirection(route, kmb.Inbound)
}

// ToggleOpen expands or collapses route's panel.
func (s Selection) ToggleOpen(route string) Selection {
	c := s.clone()
	c.Open[route] = !c.Open[route]
	return c
}

// restrictTo drops routes that are not in catalog, keeping order.
func (s Selection) restrictTo(catalog []string) Selection {
	known := make(map[string]bool, len(catalog))
	for _, r := range catalog {
		known[r] = true
	}
	c := s.clone()
	c.Routes = c.Routes[:0]
	for _, r := range s.Routes {
		if known[r] {
			c.Routes = append(c.Routes, r)
		}
	}
	return c
}
