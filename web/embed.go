package web

import "embed"

// Static embeds the front-end build output. index.html is the entry
// document served for every client-side route.
//
//go:embed static
var Static embed.FS
