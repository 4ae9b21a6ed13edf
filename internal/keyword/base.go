package keyword

import "strings"

// baseKeywords is the connection-independent SQL vocabulary, roughly the
// SQL-92 reserved word list. Driver-specific words (LIMIT, OFFSET, ...)
// arrive via the connection overlay instead.
var baseKeywords = []string{
	"absolute", "action", "add", "all", "allocate", "alter", "and", "any",
	"are", "as", "asc", "assertion", "at", "authorization", "avg", "begin",
	"between", "bit", "both", "by", "cascade", "cascaded", "case", "cast",
	"catalog", "char", "character", "check", "close", "coalesce", "collate",
	"collation", "column", "commit", "connect", "connection", "constraint",
	"constraints", "continue", "convert", "corresponding", "count", "create",
	"cross", "current", "current_date", "current_time", "current_timestamp",
	"current_user", "cursor", "date", "day", "deallocate", "dec", "decimal",
	"declare", "default", "deferrable", "deferred", "delete", "desc",
	"describe", "descriptor", "diagnostics", "disconnect", "distinct",
	"domain", "double", "drop", "else", "end", "escape", "except",
	"exception", "exec", "execute", "exists", "external", "extract", "false",
	"fetch", "first", "float", "for", "foreign", "found", "from", "full",
	"get", "global", "go", "goto", "grant", "group", "having", "hour",
	"identity", "immediate", "in", "indicator", "initially", "inner",
	"input", "insensitive", "insert", "int", "integer", "intersect",
	"interval", "into", "is", "isolation", "join", "key", "language",
	"last", "leading", "left", "level", "like", "local", "lower", "match",
	"max", "min", "minute", "module", "month", "names", "national",
	"natural", "nchar", "next", "no", "not", "null", "nullif", "numeric",
	"octet_length", "of", "on", "only", "open", "option", "or", "order",
	"outer", "output", "overlaps", "pad", "partial", "position",
	"precision", "prepare", "preserve", "primary", "prior", "privileges",
	"procedure", "public", "read", "real", "references", "relative",
	"restrict", "revoke", "right", "rollback", "rows", "schema", "scroll",
	"second", "section", "select", "session", "session_user", "set",
	"size", "smallint", "some", "space", "sql", "sqlcode", "sqlerror",
	"sqlstate", "substring", "sum", "system_user", "table", "temporary",
	"then", "time", "timestamp", "timezone_hour", "timezone_minute", "to",
	"trailing", "transaction", "translate", "translation", "trim", "true",
	"union", "unique", "unknown", "update", "upper", "usage", "user",
	"using", "value", "values", "varchar", "varying", "view", "when",
	"whenever", "where", "with", "work", "write", "year", "zone",
}

// commands are the shell command names the dispatcher understands.
// Command highlighting itself is structural (the "!" prefix); this list
// feeds dispatch and completion.
var commands = []string{
	"connect", "close", "dbinfo", "help", "history", "isolation",
	"quit", "set", "tables",
}

func baseKeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(baseKeywords))
	for _, w := range baseKeywords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// BaseKeywords returns a copy of the base vocabulary.
func BaseKeywords() []string {
	words := make([]string, len(baseKeywords))
	copy(words, baseKeywords)
	return words
}

// BaseCommands returns a copy of the shell command names.
func BaseCommands() []string {
	names := make([]string, len(commands))
	copy(names, commands)
	return names
}
