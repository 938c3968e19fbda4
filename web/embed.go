package web

import "embed"

// StaticFS embeds the dashboard page.
//
//go:embed index.html
var StaticFS embed.FS
