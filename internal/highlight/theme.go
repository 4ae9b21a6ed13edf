package highlight

import (
	"errors"
	"fmt"

	"github.com/dshills/sqlstorm/internal/highlight/core"
)

// Built-in color scheme names.
const (
	SchemeDefault = "default"
	SchemeDark    = "dark"
	SchemeLight   = "light"
)

// ErrUnknownScheme is returned when a color scheme name is not registered.
var ErrUnknownScheme = errors.New("unknown color scheme")

// Theme maps every style category to a terminal style.
// A theme is total: construction fails if any category is missing.
type Theme struct {
	name   string
	styles map[TokenType]core.Style
}

// NewTheme creates a theme from a category-to-style table.
func NewTheme(name string, styles map[TokenType]core.Style) (*Theme, error) {
	for _, t := range TokenTypes() {
		if _, ok := styles[t]; !ok {
			return nil, fmt.Errorf("theme %q: no style for category %s", name, t)
		}
	}
	return &Theme{name: name, styles: styles}, nil
}

// Name returns the scheme name.
func (t *Theme) Name() string {
	return t.name
}

// StyleFor returns the style for a category.
func (t *Theme) StyleFor(tokenType TokenType) core.Style {
	return t.styles[tokenType]
}

// DefaultTheme renders every category with the terminal's default style.
// The lexer still runs; the user just sees an unhighlighted line.
func DefaultTheme() *Theme {
	styles := make(map[TokenType]core.Style, tokenTypeCount)
	for _, t := range TokenTypes() {
		styles[t] = core.DefaultStyle()
	}
	return &Theme{name: SchemeDefault, styles: styles}
}

// DarkTheme is tuned for dark terminal backgrounds.
func DarkTheme() *Theme {
	keyword := core.ColorFromRGB(86, 156, 214)  // blue
	str := core.ColorFromRGB(206, 145, 120)     // orange
	ident := core.ColorFromRGB(78, 201, 176)    // teal
	comment := core.ColorFromRGB(106, 153, 85)  // green
	number := core.ColorFromRGB(181, 206, 168)  // light green
	command := core.ColorFromRGB(220, 220, 170) // yellow

	return &Theme{
		name: SchemeDark,
		styles: map[TokenType]core.Style{
			TokenDefault:    core.DefaultStyle(),
			TokenCommand:    core.NewStyle(command).Bold(),
			TokenKeyword:    core.NewStyle(keyword).Bold(),
			TokenString:     core.NewStyle(str),
			TokenIdentifier: core.NewStyle(ident),
			TokenComment:    core.NewStyle(comment).Italic(),
			TokenNumber:     core.NewStyle(number),
		},
	}
}

// LightTheme is tuned for light terminal backgrounds.
func LightTheme() *Theme {
	keyword := core.ColorFromRGB(0, 0, 255)    // blue
	str := core.ColorFromRGB(163, 21, 21)      // dark red
	ident := core.ColorFromRGB(38, 127, 153)   // cyan
	comment := core.ColorFromRGB(0, 128, 0)    // green
	number := core.ColorFromRGB(9, 134, 88)    // teal
	command := core.ColorFromRGB(121, 94, 38)  // brown

	return &Theme{
		name: SchemeLight,
		styles: map[TokenType]core.Style{
			TokenDefault:    core.DefaultStyle(),
			TokenCommand:    core.NewStyle(command).Bold(),
			TokenKeyword:    core.NewStyle(keyword).Bold(),
			TokenString:     core.NewStyle(str),
			TokenIdentifier: core.NewStyle(ident),
			TokenComment:    core.NewStyle(comment).Italic(),
			TokenNumber:     core.NewStyle(number),
		},
	}
}

// ThemeRegistry holds available color schemes.
type ThemeRegistry struct {
	themes map[string]*Theme
}

// NewThemeRegistry creates a registry with the built-in schemes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{themes: make(map[string]*Theme)}
	r.Register(DefaultTheme())
	r.Register(DarkTheme())
	r.Register(LightTheme())
	return r
}

// Register adds a theme to the registry.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.themes[theme.Name()] = theme
}

// Lookup returns the theme for a scheme name. Unknown names are a
// configuration error, never a silent fallback.
func (r *ThemeRegistry) Lookup(name string) (*Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
	return t, nil
}

// Names returns all registered scheme names.
func (r *ThemeRegistry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	return names
}
