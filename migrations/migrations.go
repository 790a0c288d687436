// Package migrations embeds the SQLite schema.
package migrations

import "embed"

// FS holds the *.up.sql migrations, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
