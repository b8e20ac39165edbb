// Package migrations embeds the PostgreSQL schema migrations for the
// control-plane store. golang-migrate's iofs source driver reads these
// directly from the compiled binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
