// Package shell is the interactive surface of sqlstorm: a tcell-backed
// prompt that highlights the statement being typed on every redraw and
// dispatches completed lines to SQL execution or "!" commands.
package shell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sqlstorm/internal/highlight/core"
)

// Terminal wraps a tcell screen for the shell's drawing needs.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a terminal on the process's tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen. Tests use this with a
// tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the underlying screen.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Fini releases the terminal.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Size returns the screen dimensions.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Clear erases the screen.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.screen.Show()
}

// PollEvent blocks for the next input event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// ShowCursor places the cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

// SetCells draws styled cells on a row starting at column x.
// It returns the column after the last drawn cell.
func (t *Terminal) SetCells(x, row int, cells []core.Cell) int {
	width, _ := t.screen.Size()
	for _, cell := range cells {
		if x >= width {
			break
		}
		t.screen.SetContent(x, row, cell.Rune, nil, convertStyle(cell.Style))
		x++
	}
	return x
}

// SetText draws a plain string on a row starting at column x.
func (t *Terminal) SetText(x, row int, text string, style core.Style) int {
	width, _ := t.screen.Size()
	st := convertStyle(style)
	for _, r := range text {
		if x >= width {
			break
		}
		t.screen.SetContent(x, row, r, nil, st)
		x++
	}
	return x
}

// convertStyle maps a core style to a tcell style. AttrLineStart is a
// renderer-internal marker and has no terminal representation.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		if s.Foreground.Indexed {
			style = style.Foreground(tcell.PaletteColor(int(s.Foreground.R)))
		} else {
			style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
		}
	}
	if !s.Background.IsDefault() {
		if s.Background.Indexed {
			style = style.Background(tcell.PaletteColor(int(s.Background.R)))
		} else {
			style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
		}
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if s.Attributes.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}
