package store

import "github.com/arangodb/go-driver/v2/arangodb"

// The sub-stores run against either a database handle or a stream
// transaction; the compiler enforces that both expose the query surface.
var (
	_ dbAccess = (arangodb.Database)(nil)
	_ dbAccess = (arangodb.Transaction)(nil)
)
