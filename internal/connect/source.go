// Package connect manages database connection lifecycle for the shell
// and keeps the keyword registry in step with whichever connection is
// currently attached.
package connect

import (
	"context"
	"errors"
)

// Sentinel errors for the connect layer.
var (
	// ErrUnknownHandle is returned for operations on a handle that is
	// not an open connection.
	ErrUnknownHandle = errors.New("unknown connection handle")

	// ErrNotConnected is returned when a statement is executed with no
	// connection attached.
	ErrNotConnected = errors.New("not connected to a database")
)

// Source supplies driver metadata for a connection. It is injected so
// tests can substitute a fake instead of patching driver behavior at
// runtime.
type Source interface {
	// ReservedWords returns the driver's reserved words beyond the
	// base SQL vocabulary.
	ReservedWords(ctx context.Context, handle string) ([]string, error)

	// IdentifierQuote returns the driver's identifier quote character.
	IdentifierQuote(ctx context.Context, handle string) (byte, error)
}
