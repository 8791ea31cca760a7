package scaffold

import "embed"

//go:embed all:templates
var templateFS embed.FS
