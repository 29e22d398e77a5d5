package sql

import "strings"

// Dialect is the capability to quote identifiers for a target SQL engine.
type Dialect interface {
	// QuoteIdentifier returns the given identifier parts as a dotted
	// qualified name, quoting each part as the dialect requires.
	QuoteIdentifier(parts ...string) string
}

var (
	// AnsiDialect quotes identifiers with double quotes, and only when the
	// identifier is not safe to emit bare.
	AnsiDialect Dialect = &quotingDialect{quote: '"'}

	// MySQLDialect quotes identifiers with backticks, and only when the
	// identifier is not safe to emit bare.
	MySQLDialect Dialect = &quotingDialect{quote: '`'}

	// DefaultDialect is the dialect used when none is configured.
	DefaultDialect = AnsiDialect
)

type quotingDialect struct {
	quote byte
}

func (d *quotingDialect) QuoteIdentifier(parts ...string) string {
	var buf strings.Builder
	for i, part := range parts {
		if i > 0 {
			buf.WriteByte('.')
		}
		if isSafeIdentifier(part) {
			buf.WriteString(part)
			continue
		}
		buf.WriteByte(d.quote)
		for j := 0; j < len(part); j++ {
			if part[j] == d.quote {
				buf.WriteByte(d.quote)
			}
			buf.WriteByte(part[j])
		}
		buf.WriteByte(d.quote)
	}
	return buf.String()
}

// isSafeIdentifier reports whether an identifier can be emitted without
// quoting: a letter or underscore followed by letters, digits, underscores
// or dollar signs.
func isSafeIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '$'):
		default:
			return false
		}
	}
	return true
}
