// Package migrations embeds the goose SQL migrations for the postgres
// schema and the development seed users.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
