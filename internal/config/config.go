// Package config loads the shell configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the top-level shell configuration.
type Config struct {
	Highlight Highlight `toml:"highlight"`
}

// Highlight configures the syntax highlighting surface.
type Highlight struct {
	// ColorScheme selects the named color scheme. Unknown names fail
	// at startup; there is no silent fallback.
	ColorScheme string `toml:"color-scheme"`

	// Enabled toggles highlighting. When false the "default" scheme
	// semantics apply: the lexer runs but the line renders uniformly.
	Enabled bool `toml:"enabled"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Highlight: Highlight{
			ColorScheme: "default",
			Enabled:     true,
		},
	}
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads configuration from path. A missing file is not an error;
// defaults apply. Malformed TOML is a ParseError.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
	}
	return cfg, nil
}
