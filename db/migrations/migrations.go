// Package migrations holds the forward-only schema history of the audit
// store. SQL steps are embedded; data backfills that need application logic
// are registered as goose Go migrations. Shipped steps are never edited,
// new steps are appended with the next version number.
package migrations

import "embed"

//go:embed *.sql
var Embed embed.FS
