package exteriorchat

import "embed"

// Migrations holds the embedded goose SQL migrations so binaries can apply
// them without shipping the files alongside the executable.
//
//go:embed migrations/*.sql
var Migrations embed.FS
