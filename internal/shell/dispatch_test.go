package shell

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestDispatchUnknownCommand(t *testing.T) {
	s := newTestShell(t)
	err := s.dispatch(context.Background(), "!bogus")
	if err == nil || !strings.Contains(err.Error(), "!bogus") {
		t.Errorf("dispatch = %v, want unknown command error naming !bogus", err)
	}
}

func TestDispatchHelpListsCommands(t *testing.T) {
	s := newTestShell(t)
	if err := s.dispatch(context.Background(), "!help"); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	joined := strings.Join(s.output, "\n")
	for _, name := range []string{"!connect", "!quit", "!set"} {
		if !strings.Contains(joined, name) {
			t.Errorf("help output missing %s", name)
		}
	}
}

func TestCmdSetRejectsUnknownScheme(t *testing.T) {
	s := newTestShell(t)
	before := s.Theme()

	err := s.dispatch(context.Background(), "!set color-scheme neon")
	if err == nil {
		t.Fatal("dispatch accepted unknown scheme")
	}
	if s.Theme() != before {
		t.Error("failed !set changed the active theme")
	}
}

func TestCmdSetUsage(t *testing.T) {
	s := newTestShell(t)
	for _, line := range []string{"!set", "!set color-scheme", "!set font big"} {
		if err := s.dispatch(context.Background(), line); err == nil {
			t.Errorf("dispatch(%q) succeeded, want usage error", line)
		}
	}
}

func TestCmdHistoryRecordsSubmissions(t *testing.T) {
	s := newTestShell(t)
	ctx := context.Background()

	s.buffer = "!set color-scheme dark"
	if err := s.handleEnter(ctx); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}
	s.buffer = "select 1;"
	if err := s.handleEnter(ctx); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}

	s.output = nil
	if err := s.dispatch(ctx, "!history"); err != nil {
		t.Fatalf("!history: %v", err)
	}
	joined := strings.Join(s.output, "\n")
	if !strings.Contains(joined, "1: !set color-scheme dark") {
		t.Errorf("history missing command entry:\n%s", joined)
	}
	if !strings.Contains(joined, "2: select 1;") {
		t.Errorf("history missing SQL entry:\n%s", joined)
	}
}

func TestCmdIsolation(t *testing.T) {
	s := newTestShell(t)
	ctx := context.Background()

	if err := s.dispatch(ctx, "!isolation"); err != nil {
		t.Fatalf("!isolation: %v", err)
	}
	if !strings.Contains(strings.Join(s.output, "\n"), defaultIsolation) {
		t.Errorf("default isolation not echoed: %v", s.output)
	}

	if err := s.dispatch(ctx, "!isolation transaction_read_committed"); err != nil {
		t.Fatalf("!isolation set: %v", err)
	}
	if s.isolation != "TRANSACTION_READ_COMMITTED" {
		t.Errorf("isolation = %q after set", s.isolation)
	}

	if err := s.dispatch(ctx, "!isolation bogus"); err == nil {
		t.Error("unknown isolation level accepted")
	}
}

func TestCmdCloseWithoutConnection(t *testing.T) {
	s := newTestShell(t)
	if err := s.dispatch(context.Background(), "!close"); err == nil {
		t.Error("!close without a connection succeeded")
	}
	if err := s.dispatch(context.Background(), "!dbinfo"); err == nil {
		t.Error("!dbinfo without a connection succeeded")
	}
}

func TestConnectAndQueryRoundTrip(t *testing.T) {
	s := newTestShell(t)
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "shell.db")

	if err := s.dispatch(ctx, "!connect "+dsn); err != nil {
		t.Fatalf("!connect: %v", err)
	}

	s.execSQL(ctx, "create table t (id integer, name text);")
	s.execSQL(ctx, "insert into t values (1, 'one'), (2, 'two');")
	s.execSQL(ctx, "select name from t order by id;")

	joined := strings.Join(s.output, "\n")
	for _, want := range []string{"connected:", "one", "two", "2 row(s)"} {
		if !strings.Contains(joined, want) {
			t.Errorf("scrollback missing %q:\n%s", want, joined)
		}
	}

	s.output = nil
	if err := s.dispatch(ctx, "!tables"); err != nil {
		t.Fatalf("!tables: %v", err)
	}
	if !strings.Contains(strings.Join(s.output, "\n"), "t") {
		t.Errorf("!tables output missing table name: %v", s.output)
	}

	if err := s.dispatch(ctx, "!close"); err != nil {
		t.Fatalf("!close: %v", err)
	}
}

func TestReturnsRows(t *testing.T) {
	tests := []struct {
		stmt string
		want bool
	}{
		{"select 1", true},
		{"SELECT 1", true},
		{"with x as (select 1) select * from x", true},
		{"pragma table_info(t)", true},
		{"explain select 1", true},
		{"insert into t values (1)", false},
		{"create table t (id integer)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := returnsRows(tt.stmt); got != tt.want {
			t.Errorf("returnsRows(%q) = %v, want %v", tt.stmt, got, tt.want)
		}
	}
}
