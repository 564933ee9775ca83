// Package migrations embeds the SQL schema files so binaries can migrate
// without the source tree.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
