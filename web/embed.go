package web

import "embed"

// StaticFiles embeds the CSS and JS served under /static/.
//
//go:embed static/*
var StaticFiles embed.FS
