package render

import "strings"

// reserved lists words that must always be quoted as identifiers.
var reserved = map[string]bool{
	"all": true, "and": true, "as": true, "asc": true, "between": true,
	"by": true, "case": true, "check": true, "column": true, "create": true,
	"default": true, "delete": true, "desc": true, "distinct": true, "drop": true,
	"else": true, "end": true, "except": true, "false": true, "fetch": true,
	"for": true, "from": true, "group": true, "having": true, "in": true,
	"index": true, "insert": true, "intersect": true, "into": true, "is": true,
	"join": true, "key": true, "like": true, "limit": true, "not": true,
	"null": true, "offset": true, "on": true, "or": true, "order": true,
	"primary": true, "references": true, "select": true, "set": true,
	"table": true, "then": true, "to": true, "true": true, "union": true,
	"update": true, "user": true, "values": true, "when": true, "where": true,
	"with": true,
}

// NeedsQuoting reports whether name must be quoted to survive as an identifier.
// Plain lower-case names that are not reserved words are left bare.
func NeedsQuoting(name string) bool {
	if name == "" || reserved[name] {
		return true
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return true
		}
	}
	return false
}

// QuoteWith wraps name in open/close, doubling any embedded close character.
func QuoteWith(name, open, closing string) string {
	return open + strings.ReplaceAll(name, closing, closing+closing) + closing
}
