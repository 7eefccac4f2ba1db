package templates

import (
	"bytes"
	"context"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"kmbeta/internal/dashboard"
	"kmbeta/internal/eta"
	"kmbeta/internal/i18n"
	"kmbeta/internal/kmb"
)

func testView() dashboard.View {
	sel := dashboard.NewSelection()
	sel.Routes = []string{"1A", "2"}
	sel.Open["1A"] = true
	sel.Stops["1A"] = "abc123"

	return dashboard.View{
		Selection: sel,
		Strings:   i18n.For(i18n.EN),
		Langs: []dashboard.LangOption{
			{Lang: i18n.EN, Label: "En", Href: "/?route=1A", Selected: true},
			{Lang: i18n.TC, Label: "繁", Href: "/?lang=tc&route=1A"},
		},
		Catalog: []string{"1A", "2", "3C"},
		Panels: []dashboard.Panel{
			{
				Route:     "1A",
				Direction: kmb.Outbound,
				State:     dashboard.ETADisplayed,
				Heading:   "Star Ferry → Sau Mau Ping",
				Stops: []dashboard.StopOption{
					{ID: "abc123", Seq: 1, Label: "Star Ferry Bus Terminus", Selected: true},
					{ID: "def456", Seq: 2, Label: "Canton Road <Middle>"},
				},
				StopID:   "abc123",
				StopName: "Star Ferry Bus Terminus",
				Slots: []eta.Slot{
					{Text: "2 mins", Minutes: 2, At: time.Date(2024, 3, 1, 7, 2, 0, 0, time.UTC), Dest: "Sau Mau Ping"},
					{Text: "Last Bus", IsRemark: true},
				},
				ToggleHref:    "/?route=1A&route=2",
				DirectionHref: "/?route=1A&route=2&dir.1A=inbound&open.1A=1",
			},
			{Route: "2", State: dashboard.Collapsed, ToggleHref: "/?route=1A&route=2&open.1A=1&open.2=1"},
		},
		Updated: time.Date(2024, 3, 1, 15, 0, 5, 0, time.UTC),
	}
}

func TestPanels(t *testing.T) {
	var buf bytes.Buffer
	if err := Panels(testView()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<div id="panels">`,
		`data-state="eta-displayed"`,
		`Star Ferry → Sau Mau Ping`,
		`<option value="abc123" selected>1. Star Ferry Bus Terminus</option>`,
		`2. Canton Road &lt;Middle&gt;`,
		`name="stop.1A"`,
		`<p class="stop-name">Star Ferry Bus Terminus</p>`,
		`<li><time datetime="2024-03-01T07:02:00Z">2 mins</time> <span class="dest">Sau Mau Ping</span></li>`,
		`<li class="remark">Last Bus</li>`,
		`Reverse Route`,
		`data-state="collapsed"`,
		`Update: 15:00:05`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "<select") != 1 {
		t.Error("collapsed panel should not render a stop selector")
	}
}

func TestPanels_NoDestination(t *testing.T) {
	v := testView()
	v.Panels[0].Slots[0].Dest = ""

	var buf bytes.Buffer
	if err := Panels(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, `class="dest"`) {
		t.Error("slot without a destination should not render one")
	}
	if !strings.Contains(out, `>2 mins</time>`) {
		t.Errorf("countdown missing: %s", out)
	}
}

func TestPanels_NotFound(t *testing.T) {
	v := testView()
	v.Panels = []dashboard.Panel{{
		Route:   "99X",
		State:   dashboard.RouteNotFound,
		Message: "Cannot find this route 99X (O)",
	}}

	var buf bytes.Buffer
	if err := Panels(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `<p class="warning">Cannot find this route 99X (O)</p>`) {
		t.Errorf("missing not-found message: %s", out)
	}
	if strings.Contains(out, "<h3>") {
		t.Error("not-found panel should have no heading")
	}
}

func TestPanels_NoETA(t *testing.T) {
	v := testView()
	v.Panels[0].Slots = nil
	v.Panels[0].State = dashboard.StopSelected

	var buf bytes.Buffer
	if err := Panels(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "No ETA information") {
		t.Error("stop without ETAs should say so")
	}
}

func TestDashboardPage(t *testing.T) {
	data := DashboardData{
		Page: Page{Title: "KMB ETA", Lang: "tc", AssetVersion: "abcd1234", RefreshSeconds: 30},
		View: testView(),
	}

	var buf bytes.Buffer
	if err := DashboardPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`<!doctype html>`,
		`<html lang="zh-Hant">`,
		`/static/css/main.css?v=abcd1234`,
		`<meta http-equiv="refresh" content="30">`,
		`aria-current="true" class="active">En</a>`,
		`<option value="1A" selected>1A</option>`,
		`<option value="3C">3C</option>`,
		`<input type="hidden" name="open.1A" value="1">`,
		`<div id="panels">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	routes := formText(t, out, `<form class="routes"`)
	if strings.Contains(routes, `<input type="hidden" name="route"`) {
		t.Error("route picker must not re-submit the old routes")
	}
	if !strings.Contains(routes, `<input type="hidden" name="open.1A" value="1">`) ||
		!strings.Contains(routes, `<input type="hidden" name="stop.1A" value="abc123">`) {
		t.Errorf("route picker should keep the panel state: %s", routes)
	}

	stops := formText(t, out, `<form class="stops"`)
	if !strings.Contains(stops, `<input type="hidden" name="route" value="1A"><input type="hidden" name="route" value="2">`) {
		t.Errorf("stop picker should keep the selected routes: %s", stops)
	}
	if strings.Contains(stops, `name="stop.1A" value=`) {
		t.Error("stop picker must not re-submit its own stop")
	}
}

// formText returns the first form whose opening tag starts with open.
func formText(t *testing.T, page, open string) string {
	t.Helper()
	i := strings.Index(page, open)
	if i < 0 {
		t.Fatalf("page has no %s", open)
	}
	end := strings.Index(page[i:], "</form>")
	if end < 0 {
		t.Fatalf("%s is not closed", open)
	}
	return page[i : i+end]
}

func TestHiddenFields(t *testing.T) {
	q := url.Values{
		"route":   {"1A", "2"},
		"open.1A": {"1"},
		"stop.1A": {"abc123"},
	}

	got := hiddenFields(q, "stop.1A")
	want := []hiddenField{
		{Name: "open.1A", Value: "1"},
		{Name: "route", Value: "1A"},
		{Name: "route", Value: "2"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("hiddenFields = %+v, want %+v", got, want)
	}
}
