// Package pen holds assets shared by the binaries, such as the SQL
// migrations applied by the migrate command.
package pen

import "embed"

// Migrations contains the goose migrations, rooted at "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS
