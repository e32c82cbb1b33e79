// Package migrations embeds the server Postgres schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
