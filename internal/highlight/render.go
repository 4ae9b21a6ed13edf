package highlight

import "github.com/dshills/sqlstorm/internal/highlight/core"

// Render combines lexer spans with a theme into per-character cells.
//
// The function is pure: it holds no state and cannot fail. Spans are
// expected to partition buf, as produced by Lex. The first cell carries
// core.AttrLineStart on top of its category style, no matter which
// category the lexer assigned to offset 0.
func Render(buf string, spans []Span, theme *Theme) []core.Cell {
	cells := make([]core.Cell, 0, len(buf))
	for _, span := range spans {
		style := theme.StyleFor(span.Type)
		for _, r := range buf[span.Start:span.End] {
			cells = append(cells, core.Cell{Rune: r, Style: style})
		}
	}
	if len(cells) > 0 {
		cells[0].Style.Attributes = cells[0].Style.Attributes.With(core.AttrLineStart)
	}
	return cells
}

// Highlight is the convenience path used on every redraw: lex the buffer
// against the effective vocabulary and render it with the active theme.
func Highlight(buf string, vocab Vocabulary, quote byte, theme *Theme) []core.Cell {
	return Render(buf, Lex(buf, vocab, quote), theme)
}
