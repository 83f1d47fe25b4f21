// Package migrations holds the creator-ads schema.
package migrations

import "embed"

// FS holds the numbered up/down SQL files read through golang-migrate's
// iofs source.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects. Bump it with every
// new migration pair.
const Version = 1
