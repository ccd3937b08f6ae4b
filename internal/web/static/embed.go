// Package static embeds the web client assets.
package static

import "embed"

//go:embed app.css
var FS embed.FS
