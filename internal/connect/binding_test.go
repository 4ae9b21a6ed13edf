package connect

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/sqlstorm/internal/event"
	"github.com/dshills/sqlstorm/internal/keyword"
)

// fakeSource is an injected metadata source for tests.
type fakeSource struct {
	words    []string
	quote    byte
	wordsErr error
	quoteErr error
}

func (f *fakeSource) ReservedWords(context.Context, string) ([]string, error) {
	return f.words, f.wordsErr
}

func (f *fakeSource) IdentifierQuote(context.Context, string) (byte, error) {
	return f.quote, f.quoteErr
}

func newBoundBus(t *testing.T, reg *keyword.Registry, src Source) *event.Bus {
	t.Helper()
	bus := event.NewBus()
	binding := NewBinding(reg, src)
	if err := binding.Attach(bus); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return bus
}

func TestBindingInstallsOverlayOnConnect(t *testing.T) {
	reg := keyword.NewRegistry()
	src := &fakeSource{words: []string{"LIMIT", "ROWNUM"}, quote: '`'}
	bus := newBoundBus(t, reg, src)

	if err := bus.Publish(context.Background(), event.ConnectionOpened{Handle: "h1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	snap := reg.Snapshot()
	if !snap.Contains("limit") {
		t.Error("overlay words not installed")
	}
	if snap.Quote() != '`' {
		t.Errorf("Quote() = %c, want `", snap.Quote())
	}
	if snap.Handle() != "h1" {
		t.Errorf("Handle() = %q, want h1", snap.Handle())
	}
}

func TestBindingRemovesOverlayOnDisconnect(t *testing.T) {
	reg := keyword.NewRegistry()
	src := &fakeSource{words: []string{"limit"}, quote: '`'}
	bus := newBoundBus(t, reg, src)

	ctx := context.Background()
	bus.Publish(ctx, event.ConnectionOpened{Handle: "h1"}) //nolint:errcheck
	bus.Publish(ctx, event.ConnectionClosed{Handle: "h1"}) //nolint:errcheck

	snap := reg.Snapshot()
	if snap.Contains("limit") {
		t.Error("overlay survived disconnect")
	}
	if snap.Quote() != keyword.DefaultQuote {
		t.Errorf("Quote() = %c after disconnect, want %c", snap.Quote(), keyword.DefaultQuote)
	}
}

func TestBindingFetchFailureLeavesRegistryUntouched(t *testing.T) {
	reg := keyword.NewRegistry()
	boom := errors.New("driver offline")

	for _, src := range []*fakeSource{
		{wordsErr: boom, quote: '`'},
		{words: []string{"limit"}, quoteErr: boom},
	} {
		bus := newBoundBus(t, reg, src)

		err := bus.Publish(context.Background(), event.ConnectionOpened{Handle: "h1"})
		if !errors.Is(err, boom) {
			t.Errorf("Publish = %v, want wrapped driver error", err)
		}

		snap := reg.Snapshot()
		if snap.Handle() != "" {
			t.Error("failed bind left an overlay behind")
		}
		if snap.Contains("limit") {
			t.Error("failed bind installed overlay words")
		}
		if snap.Quote() != keyword.DefaultQuote {
			t.Errorf("failed bind changed quote to %c", snap.Quote())
		}
	}
}

func TestBindingDetachDropsOverlay(t *testing.T) {
	reg := keyword.NewRegistry()
	src := &fakeSource{words: []string{"limit"}, quote: '`'}
	bus := event.NewBus()
	binding := NewBinding(reg, src)
	if err := binding.Attach(bus); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	ctx := context.Background()
	bus.Publish(ctx, event.ConnectionOpened{Handle: "h1"}) //nolint:errcheck
	binding.Detach(bus)

	if reg.Snapshot().Contains("limit") {
		t.Error("Detach left the overlay installed")
	}

	// Events after detach are ignored.
	bus.Publish(ctx, event.ConnectionOpened{Handle: "h2"}) //nolint:errcheck
	if reg.Snapshot().Handle() != "" {
		t.Error("detached binding still handles events")
	}
}
