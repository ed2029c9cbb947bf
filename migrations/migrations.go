// Package migrations embeds the SQL schema migrations for the reviews
// service, applied at startup in lexical order.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
