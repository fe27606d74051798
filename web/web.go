// Package web embeds the dashboard so the binary serves it from any working
// directory.
package web

import "embed"

//go:embed static
var Static embed.FS
