// Package migrations embebe el esquema SQL, un subdirectorio por dialecto.
package migrations

import "embed"

// FS contiene postgres/*.sql y sqlite/*.sql.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
