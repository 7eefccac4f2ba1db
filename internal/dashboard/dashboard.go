// Package dashboard joins routes, stops and live ETAs for a Selection into
// a view model ready for rendering.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"kmbeta/internal/eta"
	"kmbeta/internal/i18n"
	"kmbeta/internal/kmb"
)

// Source is the data the dashboard needs. *kmb.Client implements it.
type Source interface {
	RouteIDs(ctx context.Context) []string
	Route(ctx context.Context, route string, dir kmb.Direction) (kmb.Route, bool)
	RouteStops(ctx context.Context, route string, dir kmb.Direction) []kmb.RouteStop
	Stop(ctx context.Context, stopID string) (kmb.Stop, bool)
	ETAs(ctx context.Context, stopID, route string) []kmb.ETA
}

// State is where a panel ended up in its render pass.
type State int

const (
	Collapsed State = iota
	Expanded
	RouteNotFound
	RouteFound
	StopSelected
	ETADisplayed
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	case RouteNotFound:
		return "route-not-found"
	case RouteFound:
		return "route-found"
	case StopSelected:
		return "stop-selected"
	case ETADisplayed:
		return "eta-displayed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// StopOption is one entry of the stop selector.
type StopOption struct {
	ID       string
	Seq      int
	Label    string
	Selected bool
}

// Panel is the rendered state of one selected route.
type Panel struct {
	Route     string
	Direction kmb.Direction
	State     State
	Message   string
	Heading   string
	Stops     []StopOption
	StopID    string
	StopName  string
	Slots     []eta.Slot

	ToggleHref    string
	DirectionHref string
}

// LangOption is one entry of the language selector.
type LangOption struct {
	Lang     i18n.Language
	Label    string
	Href     string
	Selected bool
}

// View is everything a page render needs.
type View struct {
	Selection Selection
	Strings   i18n.Strings
	Langs     []LangOption
	Catalog   []string
	Panels    []Panel
	Updated   time.Time
}

// Builder runs render passes against a Source.
type Builder struct {
	src Source
}

// NewBuilder creates a Builder.
func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// Build performs one render pass. Fetches are sequential: route detail,
// then its stops, then ETAs, each only when the previous step succeeded.
func (b *Builder) Build(ctx context.Context, sel Selection, now time.Time) View {
	catalog := b.src.RouteIDs(ctx)
	sel = sel.restrictTo(catalog)

	v := View{
		Selection: sel,
		Strings:   i18n.For(sel.Lang),
		Catalog:   catalog,
		Updated:   now,
	}
	for _, l := range i18n.Supported {
		v.Langs = append(v.Langs, LangOption{
			Lang:     l,
			Label:    l.Label(),
			Href:     sel.WithLang(l).Href(),
			Selected: l == sel.Lang,
		})
	}
	for _, route := range sel.Routes {
		v.Panels = append(v.Panels, b.panel(ctx, sel, route, now))
	}
	return v
}

func (b *Builder) panel(ctx context.Context, sel Selection, route string, now time.Time) Panel {
	dir := sel.Direction(route)
	lang := string(sel.Lang)
	p := Panel{
		Route:         route,
		Direction:     dir,
		State:         Collapsed,
		ToggleHref:    sel.ToggleOpen(route).Href(),
		DirectionHref: sel.ToggleDirection(route).Href(),
	}
	if !sel.Open[route] {
		return p
	}
	p.State = Expanded

	detail, ok := b.src.Route(ctx, route, dir)
	if !ok {
		p.State = RouteNotFound
		p.Message = fmt.Sprintf(i18n.For(sel.Lang).NotFound, route, dir.Bound())
		return p
	}
	p.State = RouteFound
	p.Heading = Heading(detail.Orig(lang), detail.Dest(lang))

	routeStops := b.src.RouteStops(ctx, route, dir)
	if len(routeStops) == 0 {
		p.Message = i18n.For(sel.Lang).NoStops
		return p
	}

	chosen := sel.Stops[route]
	if !containsStop(routeStops, chosen) {
		chosen = routeStops[0].Stop
	}
	for i, rs := range routeStops {
		name := rs.Stop
		if s, ok := b.src.Stop(ctx, rs.Stop); ok {
			name = s.Name(lang)
		}
		opt := StopOption{
			ID:       rs.Stop,
			Seq:      i + 1,
			Label:    StopLabel(name),
			Selected: rs.Stop == chosen,
		}
		if opt.Selected {
			p.StopName = opt.Label
			if p.StopName == "" {
				p.StopName = name
			}
		}
		p.Stops = append(p.Stops, opt)
	}
	p.StopID = chosen
	p.State = StopSelected

	records := eta.ForDirection(b.src.ETAs(ctx, chosen, route), dir)
	if len(records) > 0 {
		p.Slots = eta.Slots(records, sel.Lang, now)
		for i := range p.Slots {
			p.Slots[i].Dest = titleCase(p.Slots[i].Dest)
		}
		p.State = ETADisplayed
	}
	return p
}

func containsStop(stops []kmb.RouteStop, id string) bool {
	if id == "" {
		return false
	}
	for _, s := range stops {
		if s.Stop == id {
			return true
		}
	}
	return false
}
