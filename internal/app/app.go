// Package app wires the sqlstorm subsystems together: configuration,
// keyword registry, event bus, connection manager, keyword binding, and
// the interactive shell.
package app

import (
	"context"
	"fmt"

	"github.com/dshills/sqlstorm/internal/config"
	"github.com/dshills/sqlstorm/internal/connect"
	"github.com/dshills/sqlstorm/internal/event"
	"github.com/dshills/sqlstorm/internal/highlight"
	"github.com/dshills/sqlstorm/internal/keyword"
	"github.com/dshills/sqlstorm/internal/shell"
)

// Options configure application startup.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty means defaults.
	ConfigPath string

	// Scheme overrides the configured color scheme when non-empty.
	Scheme string
}

// App owns the session-wide components.
type App struct {
	opts     Options
	cfg      config.Config
	registry *keyword.Registry
	themes   *highlight.ThemeRegistry
	bus      *event.Bus
	manager  *connect.Manager
	binding  *connect.Binding
	watcher  *config.Watcher
	term     *shell.Terminal
	sh       *shell.Shell
}

// New builds the application. Configuration problems, including an
// unknown color scheme, fail here rather than mid-session.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:     opts,
		cfg:      cfg,
		registry: keyword.NewRegistry(),
		themes:   highlight.NewThemeRegistry(),
		bus:      event.NewBus(),
	}

	theme, err := a.resolveTheme(cfg, opts.Scheme)
	if err != nil {
		return nil, err
	}

	a.manager = connect.NewManager(a.bus)
	a.binding = connect.NewBinding(a.registry, a.manager)
	if err := a.binding.Attach(a.bus); err != nil {
		return nil, fmt.Errorf("attaching keyword binding: %w", err)
	}

	term, err := shell.NewTerminal()
	if err != nil {
		return nil, fmt.Errorf("creating terminal: %w", err)
	}
	a.term = term
	a.sh = shell.New(term, a.registry, a.themes, theme, a.manager)

	if opts.ConfigPath != "" {
		a.watcher = config.NewWatcher(opts.ConfigPath, 0, a.onConfigChange)
	}

	return a, nil
}

// resolveTheme validates the scheme selection. Disabling highlighting
// forces the neutral scheme but never masks an invalid name.
func (a *App) resolveTheme(cfg config.Config, override string) (*highlight.Theme, error) {
	name := cfg.Highlight.ColorScheme
	if override != "" {
		name = override
	}
	theme, err := a.themes.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !cfg.Highlight.Enabled {
		return a.themes.Lookup(highlight.SchemeDefault)
	}
	return theme, nil
}

// onConfigChange re-applies the color scheme after a config reload.
// A now-invalid scheme keeps the current theme.
func (a *App) onConfigChange(cfg config.Config) {
	theme, err := a.resolveTheme(cfg, a.opts.Scheme)
	if err != nil {
		return
	}
	a.sh.SetTheme(theme)
}

// Run starts the interactive session and blocks until it ends.
func (a *App) Run(ctx context.Context) error {
	if err := a.term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer a.term.Fini()

	if a.watcher != nil {
		a.watcher.Start()
	}

	return a.sh.Run(ctx)
}

// Shutdown tears down the session: watcher, connections, and overlay.
func (a *App) Shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.manager.CloseAll(context.Background())
	a.binding.Detach(a.bus)
}
