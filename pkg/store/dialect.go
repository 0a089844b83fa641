package store

import (
	"strconv"
	"strings"
)

// dialect rewrites ? placeholders for drivers that number them.
type dialect struct {
	numbered bool
}

func dialectFor(driver string) dialect {
	return dialect{numbered: driver == DriverPostgres}
}

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
