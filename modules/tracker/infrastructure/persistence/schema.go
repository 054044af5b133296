package persistence

import (
	_ "embed"
)

//go:embed schema/tracker-schema.sql
var schemaSQL string

// Schema returns the DDL for the seven level tables, applied by the
// tracker-load CLI.
func Schema() string {
	return schemaSQL
}
