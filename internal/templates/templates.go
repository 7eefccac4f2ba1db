// Package templates renders the dashboard HTML as templ components.
// Run `templ generate` after editing a .templ file.
package templates

import (
	"net/url"
	"slices"
	"sort"

	"kmbeta/internal/dashboard"
)

// Page carries the values shared by every full page.
type Page struct {
	Title        string
	Lang         string
	AssetVersion string
	// RefreshSeconds drives the meta refresh used when scripts are off.
	RefreshSeconds int
}

// DashboardData is the full dashboard page.
type DashboardData struct {
	Page Page
	View dashboard.View
}

// htmlLang maps the selector language to a BCP 47 tag.
func htmlLang(lang string) string {
	switch lang {
	case "tc":
		return "zh-Hant"
	case "sc":
		return "zh-Hans"
	default:
		return "en"
	}
}

type hiddenField struct {
	Name, Value string
}

// hiddenFields flattens q in key order, minus the keys a form sets itself.
func hiddenFields(q url.Values, skip ...string) []hiddenField {
	keys := make([]string, 0, len(q))
	for k := range q {
		if !slices.Contains(skip, k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var fields []hiddenField
	for _, k := range keys {
		for _, v := range q[k] {
			fields = append(fields, hiddenField{Name: k, Value: v})
		}
	}
	return fields
}

func routeSelected(sel dashboard.Selection, route string) bool {
	return slices.Contains(sel.Routes, route)
}
