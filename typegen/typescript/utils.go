package typescript

import (
	"bytes"
	"encoding/json"
)

// isIdentifier reports whether s can be used as a bare TypeScript property
// name: a letter, '_' or '$' followed by letters, digits, '_' or '$'.
// Decimal indexes of positional fields are accepted as numeric keys.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if isDecimal(s) {
		return true
	}
	for i, ch := range s {
		switch {
		case ch == '_' || ch == '$':
		case (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z'):
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isDecimal(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return s != ""
}

// propertyKey quotes keys that are not bare identifiers, e.g. serde renames
// such as "first-name".
func propertyKey(s string) string {
	if isIdentifier(s) {
		return s
	}
	return quote(s)
}

// quote renders s as a double-quoted string literal. JSON string escapes are
// a subset of JavaScript's, and U+2028/U+2029 come out escaped as well.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // a string always encodes
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
