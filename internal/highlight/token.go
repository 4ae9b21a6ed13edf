// Package highlight classifies SQL shell input into style categories for
// terminal rendering. It does not parse SQL; it only decides, for every
// byte of the buffer, which of a small closed set of categories the byte
// belongs to.
package highlight

// TokenType is the style category assigned to a run of input.
type TokenType uint8

// Style categories. The set is closed: themes must map every one of them.
const (
	// TokenDefault covers whitespace, punctuation, and words that are
	// neither keywords nor numbers.
	TokenDefault TokenType = iota

	// TokenCommand is a shell command token ("!"-prefixed first token).
	TokenCommand

	// TokenKeyword is a SQL reserved word from the effective vocabulary.
	TokenKeyword

	// TokenString is a single-quoted string literal.
	TokenString

	// TokenIdentifier is a quoted SQL identifier.
	TokenIdentifier

	// TokenComment is a line ("--") or block ("/* */") comment.
	TokenComment

	// TokenNumber is a run of decimal digits.
	TokenNumber

	// Sentinel for iteration.
	tokenTypeCount
)

// tokenTypeNames maps token types to their string names.
var tokenTypeNames = []string{
	TokenDefault:    "default",
	TokenCommand:    "command",
	TokenKeyword:    "keyword",
	TokenString:     "string",
	TokenIdentifier: "identifier",
	TokenComment:    "comment",
	TokenNumber:     "number",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// TokenTypes returns every style category in declaration order.
// Themes use it to verify they are total.
func TokenTypes() []TokenType {
	types := make([]TokenType, 0, tokenTypeCount)
	for t := TokenType(0); t < tokenTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

// Span is a contiguous run of the input buffer with a single category.
// Offsets are byte positions; End is exclusive.
type Span struct {
	Start int
	End   int
	Type  TokenType
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns true if the offset is within the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}
