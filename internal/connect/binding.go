package connect

import (
	"context"
	"fmt"

	"github.com/dshills/sqlstorm/internal/event"
	"github.com/dshills/sqlstorm/internal/keyword"
)

// Binding reacts to connection lifecycle events by installing and
// removing the keyword registry's connection overlay.
//
// A failed metadata fetch leaves the registry in its prior state; the
// error propagates to the publisher (the command dispatcher), which
// reports it to the session and keeps the interactive loop running.
type Binding struct {
	registry *keyword.Registry
	source   Source
	subs     []*event.Subscription
}

// NewBinding creates a binding over the given registry and metadata source.
func NewBinding(registry *keyword.Registry, source Source) *Binding {
	return &Binding{registry: registry, source: source}
}

// Attach subscribes the binding to connection lifecycle topics.
func (b *Binding) Attach(bus *event.Bus) error {
	opened, err := bus.SubscribeFunc(event.TopicConnectionOpened, b.handle)
	if err != nil {
		return err
	}
	closed, err := bus.SubscribeFunc(event.TopicConnectionClosed, b.handle)
	if err != nil {
		bus.Unsubscribe(opened) //nolint:errcheck // best effort rollback
		return err
	}
	b.subs = append(b.subs, opened, closed)
	return nil
}

// Detach removes the binding's subscriptions and drops any overlay it
// installed for the current connection.
func (b *Binding) Detach(bus *event.Bus) {
	for _, sub := range b.subs {
		bus.Unsubscribe(sub) //nolint:errcheck // detach is best effort
	}
	b.subs = nil
	b.registry.Unbind(b.registry.Snapshot().Handle())
}

// handle dispatches on the event type. Unknown events are ignored.
func (b *Binding) handle(ctx context.Context, ev any) error {
	switch e := ev.(type) {
	case event.ConnectionOpened:
		return b.bind(ctx, e.Handle)
	case event.ConnectionClosed:
		b.registry.Unbind(e.Handle)
	}
	return nil
}

// bind fetches driver metadata and installs the overlay. The registry
// is only touched once both fetches have succeeded.
func (b *Binding) bind(ctx context.Context, handle string) error {
	words, err := b.source.ReservedWords(ctx, handle)
	if err != nil {
		return fmt.Errorf("fetching reserved words for %s: %w", handle, err)
	}
	quote, err := b.source.IdentifierQuote(ctx, handle)
	if err != nil {
		return fmt.Errorf("fetching identifier quote for %s: %w", handle, err)
	}
	b.registry.Bind(handle, words, quote)
	return nil
}
