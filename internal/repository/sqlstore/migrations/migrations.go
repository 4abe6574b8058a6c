// Package migrations embeds the goose SQL migrations for the record store.
// The same files run on SQLite and Postgres, so they stick to portable SQL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
