// Package migrations embeds the schema migrations applied by goose when
// the Postgres backend initializes.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
