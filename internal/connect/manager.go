package connect

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/dshills/sqlstorm/internal/event"
)

// Manager opens and closes SQLite connections for the shell, publishes
// lifecycle events on the bus, and implements Source for the databases
// it manages.
type Manager struct {
	bus *event.Bus

	mu      sync.Mutex
	conns   map[string]*sql.DB
	current string // handle of the most recently opened connection
}

// NewManager creates a connection manager publishing on bus.
func NewManager(bus *event.Bus) *Manager {
	return &Manager{
		bus:   bus,
		conns: make(map[string]*sql.DB),
	}
}

// Open connects to the SQLite database at dsn, publishes the opened
// event, and returns the connection handle. The opened event is
// published after the connection is verified, so subscribers can query
// metadata immediately.
func (m *Manager) Open(ctx context.Context, dsn string) (string, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // already failing
		return "", fmt.Errorf("connecting to %s: %w", dsn, err)
	}

	handle := uuid.NewString()
	m.mu.Lock()
	m.conns[handle] = db
	m.current = handle
	m.mu.Unlock()

	if err := m.bus.Publish(ctx, event.ConnectionOpened{Handle: handle}); err != nil {
		// Subscriber failures (a failed keyword fetch, for example) do
		// not invalidate the connection itself; report them upward and
		// keep the session usable.
		return handle, fmt.Errorf("connection %s opened with warnings: %w", handle, err)
	}
	return handle, nil
}

// Close tears down the connection for handle and publishes the closed
// event. Closing an unknown handle is an error.
func (m *Manager) Close(ctx context.Context, handle string) error {
	m.mu.Lock()
	db, ok := m.conns[handle]
	if ok {
		delete(m.conns, handle)
		if m.current == handle {
			m.current = ""
		}
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}

	err := db.Close()
	if pubErr := m.bus.Publish(ctx, event.ConnectionClosed{Handle: handle}); err == nil {
		err = pubErr
	}
	return err
}

// CloseAll tears down every open connection. Used at session teardown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	handles := make([]string, 0, len(m.conns))
	for h := range m.conns {
		handles = append(handles, h)
	}
	m.mu.Unlock()

	for _, h := range handles {
		m.Close(ctx, h) //nolint:errcheck // teardown is best effort
	}
}

// Current returns the handle of the active connection, or "" if none.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// DB returns the database for handle.
func (m *Manager) DB(handle string) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	db, ok := m.conns[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, handle)
	}
	return db, nil
}

// Query runs a row-returning statement against the active connection.
func (m *Manager) Query(ctx context.Context, stmt string) (*sql.Rows, error) {
	db := m.currentDB()
	if db == nil {
		return nil, ErrNotConnected
	}
	return db.QueryContext(ctx, stmt)
}

// Exec runs a statement without a result set against the active
// connection and returns the number of affected rows.
func (m *Manager) Exec(ctx context.Context, stmt string) (int64, error) {
	db := m.currentDB()
	if db == nil {
		return 0, ErrNotConnected
	}
	res, err := db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return affected, nil
}

func (m *Manager) currentDB() *sql.DB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conns[m.current]
}

// ReservedWords implements Source. SQLite's reserved words are fixed
// per driver version; there is no metadata query for them.
func (m *Manager) ReservedWords(_ context.Context, handle string) ([]string, error) {
	if _, err := m.DB(handle); err != nil {
		return nil, err
	}
	words := make([]string, len(sqliteReservedWords))
	copy(words, sqliteReservedWords)
	return words, nil
}

// IdentifierQuote implements Source. SQLite quotes identifiers with a
// double quote.
func (m *Manager) IdentifierQuote(_ context.Context, handle string) (byte, error) {
	if _, err := m.DB(handle); err != nil {
		return 0, err
	}
	return '"', nil
}

// sqliteReservedWords are the SQLite keywords that are not already in
// the base SQL vocabulary.
var sqliteReservedWords = []string{
	"abort", "after", "analyze", "attach", "autoincrement", "before",
	"conflict", "database", "detach", "each", "exclusive", "explain",
	"fail", "filter", "glob", "if", "ignore", "index", "indexed",
	"instead", "isnull", "limit", "notnull", "nothing", "offset", "over",
	"partition", "plan", "pragma", "query", "raise", "recursive",
	"regexp", "reindex", "rename", "replace", "returning", "row", "rowid",
	"temp", "trigger", "vacuum", "virtual", "window", "without",
}
