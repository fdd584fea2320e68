package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/sysparse/internal/application/port"
	"github.com/bnema/sysparse/internal/logging"
)

// LazyDB implements port.DatabaseProvider with lazy initialization.
// Commands such as `parser` or `ipaddr` never touch the catalog, so the
// WASM compilation and migrations are deferred until DB is first called.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	mu     sync.Mutex
}

// Compile-time interface check.
var _ port.DatabaseProvider = (*LazyDB)(nil)

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it on first call.
// A failed initialization is remembered and returned on every later call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil && l.err == nil {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		l.db, l.err = NewConnection(ctx, l.dbPath)
		if l.err != nil {
			log.Error().Err(l.err).Msg("lazy database initialization failed")
		}
	}

	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}
