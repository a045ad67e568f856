package migrations

import "embed"

// Files holds the numbered SQL migrations compiled into the binary, so a
// deployment is a single executable with no schema files alongside it.
//
//go:embed *.sql
var Files embed.FS
