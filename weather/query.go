package weather

import "strings"

const upperhex = "0123456789ABCDEF"

// query builds a query string in insertion order. url.Values sorts keys and
// escapes the "," and ";" separators the API expects literally, so it is not used.
type query struct {
	b strings.Builder
}

func (q *query) add(key, value string) {
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(key)
	q.b.WriteByte('=')
	q.b.WriteString(escapeQueryValue(value))
}

func (q *query) String() string {
	return q.b.String()
}

// escapeQueryValue percent-encodes everything except unreserved characters
// and the separators ",", ";" and ":".
func escapeQueryValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInQuery(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepInQuery(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~', ',', ';', ':':
		return true
	}
	return false
}
