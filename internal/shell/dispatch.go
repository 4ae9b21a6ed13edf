package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/sqlstorm/internal/keyword"
)

// dispatch executes a "!"-prefixed command line. The command name is
// the first token without its prefix; everything after is arguments.
func (s *Shell) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	name := strings.TrimPrefix(fields[0], "!")
	args := fields[1:]

	switch name {
	case "quit":
		return ErrQuit
	case "help":
		s.cmdHelp()
		return nil
	case "connect":
		return s.cmdConnect(ctx, args)
	case "close":
		return s.cmdClose(ctx)
	case "history":
		s.cmdHistory()
		return nil
	case "isolation":
		return s.cmdIsolation(args)
	case "set":
		return s.cmdSet(args)
	case "tables":
		return s.cmdTables(ctx)
	case "dbinfo":
		return s.cmdDBInfo()
	default:
		return fmt.Errorf("unknown command !%s (try !help)", name)
	}
}

func (s *Shell) cmdHelp() {
	s.echo("commands:")
	for _, name := range keyword.BaseCommands() {
		s.echo("  !" + name)
	}
	s.echo("end SQL statements with ; to execute them")
}

// cmdConnect opens a SQLite database. Highlighting keeps working on the
// old vocabulary if the keyword overlay could not be installed.
func (s *Shell) cmdConnect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: !connect <path-or-dsn>")
	}
	handle, err := s.manager.Open(ctx, args[0])
	if err != nil {
		if handle == "" {
			return err
		}
		// Connected, but a subscriber (keyword binding) failed.
		s.echo("connected: " + handle)
		return err
	}
	s.echo("connected: " + handle)
	return nil
}

func (s *Shell) cmdClose(ctx context.Context) error {
	handle := s.manager.Current()
	if handle == "" {
		return fmt.Errorf("no active connection")
	}
	if err := s.manager.Close(ctx, handle); err != nil {
		return err
	}
	s.echo("closed: " + handle)
	return nil
}

// cmdHistory echoes submitted statements, oldest first.
func (s *Shell) cmdHistory() {
	for i, entry := range s.history {
		s.echo(fmt.Sprintf("%d: %s", i+1, entry))
	}
}

// defaultIsolation matches SQLite's only real level.
const defaultIsolation = "TRANSACTION_SERIALIZABLE"

var isolationLevels = []string{
	"TRANSACTION_NONE",
	"TRANSACTION_READ_UNCOMMITTED",
	"TRANSACTION_READ_COMMITTED",
	"TRANSACTION_REPEATABLE_READ",
	"TRANSACTION_SERIALIZABLE",
}

// cmdIsolation shows or sets the advisory isolation level. The level is
// session state echoed back to the user; SQLite itself is serializable.
func (s *Shell) cmdIsolation(args []string) error {
	switch len(args) {
	case 0:
		s.echo("isolation: " + s.isolation)
		return nil
	case 1:
		want := strings.ToUpper(args[0])
		for _, level := range isolationLevels {
			if level == want {
				s.isolation = level
				s.echo("isolation: " + level)
				return nil
			}
		}
		return fmt.Errorf("unknown isolation level %q", args[0])
	default:
		return fmt.Errorf("usage: !isolation [level]")
	}
}

// cmdSet handles "!set color-scheme <name>". Unknown schemes are a
// configuration error, reported without changing the active theme.
func (s *Shell) cmdSet(args []string) error {
	if len(args) != 2 || args[0] != "color-scheme" {
		return fmt.Errorf("usage: !set color-scheme <%s>", strings.Join(s.themes.Names(), "|"))
	}
	theme, err := s.themes.Lookup(args[1])
	if err != nil {
		return err
	}
	s.SetTheme(theme)
	s.echo("color scheme: " + theme.Name())
	return nil
}

func (s *Shell) cmdTables(ctx context.Context) error {
	return s.runQuery(ctx,
		"select name from sqlite_master where type = 'table' order by name")
}

func (s *Shell) cmdDBInfo() error {
	handle := s.manager.Current()
	if handle == "" {
		return fmt.Errorf("no active connection")
	}
	snap := s.registry.Snapshot()
	s.echo("connection: " + handle)
	s.echo(fmt.Sprintf("identifier quote: %c", snap.Quote()))
	return nil
}

// execSQL runs a terminated SQL statement and echoes results or the
// failure. SQL errors never abort the loop.
func (s *Shell) execSQL(ctx context.Context, stmt string) {
	stmt = strings.TrimSuffix(stmt, ";")
	var err error
	if returnsRows(stmt) {
		err = s.runQuery(ctx, stmt)
	} else {
		err = s.runExec(ctx, stmt)
	}
	if err != nil {
		s.echo("error: " + err.Error())
	}
}

// returnsRows decides between the query and exec paths by first token.
func returnsRows(stmt string) bool {
	fields := strings.Fields(strings.ToLower(stmt))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "select", "values", "with", "pragma", "explain":
		return true
	}
	return false
}

// runExec executes a non-query statement.
func (s *Shell) runExec(ctx context.Context, stmt string) error {
	affected, err := s.manager.Exec(ctx, stmt)
	if err != nil {
		return err
	}
	s.echo(fmt.Sprintf("%d row(s) affected", affected))
	return nil
}

// runQuery executes a statement and formats rows as tab-separated text.
func (s *Shell) runQuery(ctx context.Context, stmt string) error {
	rows, err := s.manager.Query(ctx, stmt)
	if err != nil {
		return err
	}
	defer rows.Close() //nolint:errcheck // read-side close

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	s.echo(strings.Join(cols, "\t"))

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		fields := make([]string, len(cols))
		for i, v := range values {
			fields[i] = formatValue(v)
		}
		s.echo(strings.Join(fields, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	s.echo(fmt.Sprintf("%d row(s)", count))
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
