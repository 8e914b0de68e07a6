// Package db carries the embedded schema migrations for the optional
// Postgres sink.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
