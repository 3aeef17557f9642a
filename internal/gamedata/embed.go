// Package gamedata provides the embedded monster and area tables and the
// registries built from them.
package gamedata

import "embed"

// dataFS embeds the monster and area tables at build time.
//
//go:embed *.json
var dataFS embed.FS
