package highlight

import "strings"

// CommandPrefix introduces a shell command token at the start of a buffer.
const CommandPrefix = '!'

// DefaultIdentifierQuote is the quote character used for SQL identifiers
// when no connection has reported its own.
const DefaultIdentifierQuote = '"'

// Vocabulary is the read view of the effective keyword set.
// Membership tests must be case-insensitive.
type Vocabulary interface {
	Contains(word string) bool
}

// Lex scans the buffer and returns its partition into style spans.
//
// The scan is a single left-to-right pass. It never fails: unterminated
// strings, identifiers, and block comments absorb the remainder of the
// buffer, including embedded newlines. The returned spans are ordered,
// contiguous, non-overlapping, and cover exactly [0, len(buf)).
//
// vocab may be nil, in which case no word classifies as a keyword.
// quote is the identifier quote character reported by the active driver.
func Lex(buf string, vocab Vocabulary, quote byte) []Span {
	n := len(buf)
	if n == 0 {
		return nil
	}
	spans := make([]Span, 0, 8)

	// append a span, merging with the previous one when the type repeats
	add := func(start, end int, t TokenType) {
		if end <= start {
			return
		}
		if last := len(spans) - 1; last >= 0 && spans[last].Type == t && spans[last].End == start {
			spans[last].End = end
			return
		}
		spans = append(spans, Span{Start: start, End: end, Type: t})
	}

	i := 0

	// A command is only recognized as the very first token of the buffer.
	// The rest of the line, command arguments included, is scanned normally.
	if buf[0] == CommandPrefix {
		j := 0
		for j < n && !isSpace(buf[j]) {
			j++
		}
		add(0, j, TokenCommand)
		i = j
	}

	for i < n {
		c := buf[i]
		switch {
		case c == '-' && i+1 < n && buf[i+1] == '-':
			// Line comment up to (not including) the line terminator.
			j := i + 2
			for j < n && buf[j] != '\n' && buf[j] != '\r' {
				j++
			}
			add(i, j, TokenComment)
			i = j

		case c == '/' && i+1 < n && buf[i+1] == '*':
			// Block comment. Without a closer it runs to end of buffer.
			end := n
			if k := strings.Index(buf[i+2:], "*/"); k >= 0 {
				end = i + 2 + k + 2
			}
			add(i, end, TokenComment)
			i = end

		case c == '\'':
			i = lexSingleQuoted(buf, i, add)

		case c == quote:
			i = lexQuotedIdentifier(buf, i, quote, add)

		case isWordByte(c):
			j := i
			for j < n && isWordByte(buf[j]) {
				j++
			}
			if vocab != nil && vocab.Contains(buf[i:j]) {
				add(i, j, TokenKeyword)
			} else {
				lexWordRun(buf, i, j, add)
			}
			i = j

		default:
			add(i, i+1, TokenDefault)
			i++
		}
	}

	return spans
}

// lexSingleQuoted consumes a single-quoted string starting at i.
// A doubled quote inside the literal is content, not a terminator.
func lexSingleQuoted(buf string, i int, add func(int, int, TokenType)) int {
	n := len(buf)
	j := i + 1
	for j < n {
		if buf[j] == '\'' {
			if j+1 < n && buf[j+1] == '\'' {
				j += 2
				continue
			}
			j++
			break
		}
		j++
	}
	add(i, j, TokenString)
	return j
}

// lexQuotedIdentifier consumes a quoted identifier starting at i.
// Unlike strings, the quote is escaped by a preceding backslash.
func lexQuotedIdentifier(buf string, i int, quote byte, add func(int, int, TokenType)) int {
	n := len(buf)
	j := i + 1
	for j < n {
		if buf[j] == quote && buf[j-1] != '\\' {
			j++
			break
		}
		j++
	}
	add(i, j, TokenIdentifier)
	return j
}

// lexWordRun classifies a non-keyword word run per character: maximal
// digit runs are numbers, everything else is default. The run breaks at
// every digit/non-digit boundary, so "abc123" yields two spans.
func lexWordRun(buf string, i, j int, add func(int, int, TokenType)) {
	k := i
	for k < j {
		m := k
		if isDigit(buf[k]) {
			for m < j && isDigit(buf[m]) {
				m++
			}
			add(k, m, TokenNumber)
		} else {
			for m < j && !isDigit(buf[m]) {
				m++
			}
			add(k, m, TokenDefault)
		}
		k = m
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_'
}
