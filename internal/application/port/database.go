// Package port defines interfaces for infrastructure adapters.
package port

import (
	"context"
	"database/sql"
)

// DatabaseProvider provides access to the unit catalog connection.
// Implementations may open the database lazily so commands that never
// touch the catalog skip the WASM compilation and migrations.
type DatabaseProvider interface {
	// DB returns the database connection, initializing it if necessary.
	DB(ctx context.Context) (*sql.DB, error)

	// Close closes the database connection if it was initialized.
	Close() error

	// IsInitialized returns true if the database has been initialized.
	IsInitialized() bool
}
