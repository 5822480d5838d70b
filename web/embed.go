package web

import "embed"

// Templates embeds the server-rendered page templates.
//
//go:embed templates
var Templates embed.FS
