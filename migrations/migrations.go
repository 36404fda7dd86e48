// Package migrations contiene los scripts SQL embebidos del esquema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
