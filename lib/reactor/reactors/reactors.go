// Package reactors holds the default reaction tables for protocol 762.
package reactors

import (
	"sync"

	"gfx.cafe/gfx/mcwire/lib/reactor"
)

// Default is the process-wide table: Login followed by Play. It is built on
// first use and never modified; connections that need different behaviour
// get their own table through Override or NewTable.
var Default = sync.OnceValue(func() *reactor.Table {
	return reactor.MustNewTable(append(Login(), Play()...)...)
})
