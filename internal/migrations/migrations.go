// Package migrations embeds the goose SQL migrations of the relational
// backend. The files are applied in version order by the repository manager.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
