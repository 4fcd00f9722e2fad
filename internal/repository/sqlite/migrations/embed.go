package migrations

import "embed"

// FS holds the SQL migration files applied by Run, in lexical order.
//
//go:embed *.sql
var FS embed.FS
