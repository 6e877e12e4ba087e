package db

import (
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pqUniqueViolation = pq.ErrorCode("23505")

// Rebind rewrites '?' placeholders into the driver's bind style.
// Queries are written once with '?' and rebound for postgres ($1, $2, ...).
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// UniqueViolation reports whether err is a unique-constraint failure and,
// when it is, the offending column name as far as the driver exposes it.
func UniqueViolation(err error) (column string, ok bool) {
	if err == nil {
		return "", false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// "UNIQUE constraint failed: users.email (2067)"
		msg := sqliteErr.Error()
		if sqliteErr.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && !strings.Contains(msg, "UNIQUE constraint failed") {
			return "", false
		}
		if i := strings.LastIndex(msg, "."); i >= 0 {
			col := msg[i+1:]
			if j := strings.IndexAny(col, " ("); j >= 0 {
				col = col[:j]
			}
			return col, true
		}
		return "", true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != pqUniqueViolation {
			return "", false
		}
		// "users_email_key"
		c := strings.TrimSuffix(pqErr.Constraint, "_key")
		if i := strings.Index(c, "_"); i >= 0 {
			c = c[i+1:]
		}
		return c, true
	}

	return "", false
}
