// Package event provides the small synchronous event bus that connects
// the shell's command dispatcher to the highlighting subsystem. Command
// execution publishes connection lifecycle events; the keyword binding
// subscribes to them.
package event

import "context"

// Topic identifies an event stream.
type Topic string

// Connection lifecycle topics.
const (
	TopicConnectionOpened Topic = "connection.opened"
	TopicConnectionClosed Topic = "connection.closed"
)

// TopicProvider is implemented by events that know their topic.
type TopicProvider interface {
	EventTopic() Topic
}

// ConnectionOpened is published after a database connection is
// established and ready for metadata queries.
type ConnectionOpened struct {
	// Handle identifies the connection for later unbind/close.
	Handle string
}

// EventTopic implements TopicProvider.
func (ConnectionOpened) EventTopic() Topic { return TopicConnectionOpened }

// ConnectionClosed is published after a connection is torn down.
type ConnectionClosed struct {
	Handle string
}

// EventTopic implements TopicProvider.
func (ConnectionClosed) EventTopic() Topic { return TopicConnectionClosed }

// Handler processes an event. The event parameter is type-erased;
// handlers type-assert on the events they care about.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}
