// Package migrations embeds the SQL schema for the postgres and mysql session backends.
package migrations

import "embed"

// FS holds postgresql/*.sql and mysql/*.sql.
//
//go:embed postgresql/*.sql mysql/*.sql
var FS embed.FS
