package shell

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/sqlstorm/internal/connect"
	"github.com/dshills/sqlstorm/internal/event"
	"github.com/dshills/sqlstorm/internal/highlight"
	"github.com/dshills/sqlstorm/internal/highlight/core"
	"github.com/dshills/sqlstorm/internal/keyword"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	themes := highlight.NewThemeRegistry()
	theme, err := themes.Lookup(highlight.SchemeDefault)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	manager := connect.NewManager(event.NewBus())
	return New(nil, keyword.NewRegistry(), themes, theme, manager)
}

func TestHandleEnterContinuesUnterminatedSQL(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "select *"

	if err := s.handleEnter(context.Background()); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}
	if s.buffer != "select *\n" {
		t.Errorf("buffer = %q, want continuation newline", s.buffer)
	}
	if len(s.output) != 0 {
		t.Errorf("unterminated statement was echoed: %v", s.output)
	}
}

func TestHandleEnterEmptyBufferStaysEmpty(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "   "

	if err := s.handleEnter(context.Background()); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}
	if s.buffer != "" {
		t.Errorf("buffer = %q, want empty", s.buffer)
	}
}

func TestHandleEnterDispatchesCommandImmediately(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "!set color-scheme dark"

	if err := s.handleEnter(context.Background()); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}
	if s.buffer != "" {
		t.Errorf("buffer = %q after command, want empty", s.buffer)
	}
	if got := s.Theme().Name(); got != highlight.SchemeDark {
		t.Errorf("active theme = %q, want dark", got)
	}
}

func TestHandleEnterQuitCommand(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "!quit"

	if err := s.handleEnter(context.Background()); !errors.Is(err, ErrQuit) {
		t.Errorf("handleEnter = %v, want ErrQuit", err)
	}
}

func TestHandleEnterReportsSQLWithoutConnection(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "select 1;"

	if err := s.handleEnter(context.Background()); err != nil {
		t.Fatalf("handleEnter: %v", err)
	}
	if s.buffer != "" {
		t.Errorf("buffer = %q after submit, want empty", s.buffer)
	}

	found := false
	for _, line := range s.output {
		if strings.Contains(line, connect.ErrNotConnected.Error()) {
			found = true
		}
	}
	if !found {
		t.Errorf("scrollback %v missing not-connected error", s.output)
	}
}

func TestEchoInputPrefixesContinuationLines(t *testing.T) {
	s := newTestShell(t)
	s.echoInput("select *\nfrom t;")

	want := []string{"sql> select *", "...> from t;"}
	if len(s.output) != len(want) {
		t.Fatalf("output = %v, want %v", s.output, want)
	}
	for i := range want {
		if s.output[i] != want[i] {
			t.Errorf("output[%d] = %q, want %q", i, s.output[i], want[i])
		}
	}
}

func TestBackspaceHandlesMultibyteRunes(t *testing.T) {
	s := newTestShell(t)
	s.buffer = "sélect"
	s.backspace()
	if s.buffer != "sélec" {
		t.Errorf("buffer = %q, want sélec", s.buffer)
	}

	s.buffer = ""
	s.backspace()
	if s.buffer != "" {
		t.Error("backspace on empty buffer changed it")
	}
}

func TestSplitCells(t *testing.T) {
	cells := []core.Cell{
		{Rune: 'a'}, {Rune: '\n'}, {Rune: 'b'}, {Rune: 'c'}, {Rune: '\n'},
	}
	lines := splitCells(cells)
	if len(lines) != 3 {
		t.Fatalf("splitCells = %d lines, want 3", len(lines))
	}
	if len(lines[0]) != 1 || lines[0][0].Rune != 'a' {
		t.Errorf("line 0 = %v", lines[0])
	}
	if len(lines[1]) != 2 {
		t.Errorf("line 1 has %d cells, want 2", len(lines[1]))
	}
	if len(lines[2]) != 0 {
		t.Errorf("trailing line not empty: %v", lines[2])
	}

	if got := splitCells(nil); len(got) != 1 || len(got[0]) != 0 {
		t.Errorf("splitCells(nil) = %v, want one empty line", got)
	}
}
