package event

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Subscription represents an active subscription on the bus.
type Subscription struct {
	id      string
	topic   Topic
	handler Handler
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic { return s.topic }

// Bus is a synchronous publish/subscribe bus. Handlers run in the
// publisher's goroutine; connection lifecycle work is cheap enough that
// no async queue is warranted here.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]*Subscription)}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if topic == "" {
		return nil, ErrInvalidTopic
	}

	sub := &Subscription{
		id:      uuid.NewString(),
		topic:   topic,
		handler: handler,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], sub)
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function.
func (b *Bus) SubscribeFunc(topic Topic, fn HandlerFunc) (*Subscription, error) {
	return b.Subscribe(topic, fn)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers an event to every subscriber of its topic, in
// subscription order. Handler errors do not stop delivery; they are
// joined and returned to the publisher.
func (b *Bus) Publish(ctx context.Context, event any) error {
	tp, ok := event.(TopicProvider)
	if !ok {
		return ErrInvalidEvent
	}
	topic := tp.EventTopic()
	if topic == "" {
		return ErrInvalidEvent
	}

	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.handler.Handle(ctx, event); err != nil {
			errs = append(errs, &HandlerError{
				SubscriptionID: sub.id,
				Topic:          topic,
				Err:            err,
			})
		}
	}
	return errors.Join(errs...)
}
