// Package db carries the embedded schema migrations.
package db

import "embed"

// Migrations holds the SQL migration files applied with golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
