// Package ui embeds the templates and static assets so the binary can be
// deployed without the source tree.
package ui

import "embed"

//go:embed static templates
var Files embed.FS
