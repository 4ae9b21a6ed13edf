package shell

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sqlstorm/internal/connect"
	"github.com/dshills/sqlstorm/internal/highlight"
	"github.com/dshills/sqlstorm/internal/highlight/core"
	"github.com/dshills/sqlstorm/internal/keyword"
)

// ErrQuit signals a normal user-initiated exit from the loop.
var ErrQuit = errors.New("quit")

// prompt strings for the first and continuation lines of a statement.
const (
	prompt     = "sql> "
	promptCont = "...> "
)

// Shell drives the interactive loop. Every redraw highlights the entire
// pending buffer synchronously against the current keyword snapshot, so
// a connection bind that lands mid-edit shows up on the next keystroke.
type Shell struct {
	term     *Terminal
	registry *keyword.Registry
	themes   *highlight.ThemeRegistry
	manager  *connect.Manager

	mu    sync.Mutex
	theme *highlight.Theme

	buffer    string   // statement typed so far, may span lines
	output    []string // scrollback, most recent last
	history   []string // submitted statements and commands
	isolation string   // advisory transaction isolation level
}

// New creates a shell over the given collaborators.
func New(term *Terminal, registry *keyword.Registry, themes *highlight.ThemeRegistry, theme *highlight.Theme, manager *connect.Manager) *Shell {
	return &Shell{
		term:      term,
		registry:  registry,
		themes:    themes,
		manager:   manager,
		theme:     theme,
		isolation: defaultIsolation,
	}
}

// SetTheme switches the active color scheme.
func (s *Shell) SetTheme(theme *highlight.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// Theme returns the active color scheme.
func (s *Shell) Theme() *highlight.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Run executes the interactive loop until quit or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	s.echo("sqlstorm interactive SQL shell. Type !help for commands.")
	s.redraw()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev := s.term.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.term.Clear()
		case *tcell.EventKey:
			if err := s.handleKey(ctx, ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		case nil:
			// Screen finalized underneath us.
			return nil
		}

		s.redraw()
	}
}

func (s *Shell) handleKey(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlD:
		return ErrQuit
	case tcell.KeyEnter:
		return s.handleEnter(ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.backspace()
	case tcell.KeyRune:
		s.buffer += string(ev.Rune())
	}
	return nil
}

// handleEnter either submits the buffer or continues it on a new line.
// Commands submit immediately; SQL waits for a ";" terminator.
func (s *Shell) handleEnter(ctx context.Context) error {
	line := s.buffer
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		s.buffer = ""
	case strings.HasPrefix(trimmed, string(highlight.CommandPrefix)):
		s.echoInput(line)
		s.history = append(s.history, trimmed)
		s.buffer = ""
		if err := s.dispatch(ctx, trimmed); err != nil {
			if errors.Is(err, ErrQuit) {
				return err
			}
			s.echo("error: " + err.Error())
		}
	case strings.HasSuffix(trimmed, ";"):
		s.echoInput(line)
		s.history = append(s.history, trimmed)
		s.buffer = ""
		s.execSQL(ctx, trimmed)
	default:
		s.buffer += "\n"
	}
	return nil
}

func (s *Shell) backspace() {
	if s.buffer == "" {
		return
	}
	runes := []rune(s.buffer)
	s.buffer = string(runes[:len(runes)-1])
}

// echo appends a plain line to the scrollback.
func (s *Shell) echo(line string) {
	s.output = append(s.output, line)
}

// echoInput records the submitted statement in the scrollback, one
// prompt-prefixed row per embedded line.
func (s *Shell) echoInput(input string) {
	for i, line := range strings.Split(input, "\n") {
		p := prompt
		if i > 0 {
			p = promptCont
		}
		s.echo(p + line)
	}
}

// redraw paints scrollback plus the highlighted pending buffer.
func (s *Shell) redraw() {
	s.term.Clear()
	width, height := s.term.Size()
	if width == 0 || height == 0 {
		return
	}

	snap := s.registry.Snapshot()
	cells := highlight.Highlight(s.buffer, snap, snap.Quote(), s.Theme())
	bufLines := splitCells(cells)

	// Scrollback fills the rows above the prompt block.
	promptRows := len(bufLines)
	outStart := height - promptRows - len(s.output)
	row := 0
	for i, line := range s.output {
		if outStart+i < 0 {
			continue
		}
		row = outStart + i
		s.term.SetText(0, row, line, core.DefaultStyle())
		row++
	}

	cursorX, cursorY := 0, row
	for i, line := range bufLines {
		p := prompt
		if i > 0 {
			p = promptCont
		}
		x := s.term.SetText(0, row, p, core.DefaultStyle())
		x = s.term.SetCells(x, row, line)
		cursorX, cursorY = x, row
		row++
	}

	s.term.ShowCursor(cursorX, cursorY)
	s.term.Show()
}

// splitCells breaks rendered cells into rows at newline cells. The
// newline cells themselves are not drawn. Always returns at least one
// (possibly empty) row so the prompt renders.
func splitCells(cells []core.Cell) [][]core.Cell {
	lines := [][]core.Cell{nil}
	for _, c := range cells {
		if c.Rune == '\n' {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], c)
	}
	return lines
}
