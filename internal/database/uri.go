package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

const memoryDSN = ":memory:"

var ErrUnsupportedDialect = errors.New("unsupported database dialect")

// Target is a parsed database URI: the dialect and the DSN its gorm driver
// expects.
type Target struct {
	Dialect Dialect
	DSN     string
}

// InMemory reports whether the target is a private in-memory SQLite database.
func (t Target) InMemory() bool {
	return t.Dialect == DialectSQLite && t.DSN == memoryDSN
}

// ParseURI turns a URI such as sqlite:///mydatabase.db or
// postgresql+pgx://user:pw@host/db into a Target. A "+driver" suffix on the
// scheme is accepted and ignored.
func ParseURI(uri string) (Target, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "" {
		return Target{}, fmt.Errorf("malformed database URI %q", uri)
	}
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "sqlite", "sqlite3":
		return Target{Dialect: DialectSQLite, DSN: sqlitePath(rest)}, nil
	case "postgres", "postgresql":
		return Target{Dialect: DialectPostgres, DSN: "postgres://" + rest}, nil
	case "mysql":
		dsn, err := mysqlDSN(rest)
		if err != nil {
			return Target{}, err
		}
		return Target{Dialect: DialectMySQL, DSN: dsn}, nil
	default:
		return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedDialect, scheme)
	}
}

// sqlite:///relative.db, sqlite:////abs/path.db and a bare sqlite:// which
// means in-memory.
func sqlitePath(rest string) string {
	path := strings.TrimPrefix(rest, "/")
	if path == "" || path == memoryDSN {
		return memoryDSN
	}
	return path
}

// mysqlDSN converts the URL form into go-sql-driver's user:pw@tcp(host)/db form.
func mysqlDSN(rest string) (string, error) {
	u, err := url.Parse("mysql://" + rest)
	if err != nil {
		return "", fmt.Errorf("malformed mysql URI: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("malformed mysql URI: missing host")
	}

	host := u.Host
	if u.Port() == "" {
		host += ":3306"
	}

	q := u.Query()
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	var cred string
	if u.User != nil {
		cred = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			cred += ":" + pw
		}
		cred += "@"
	}

	return fmt.Sprintf("%stcp(%s)/%s?%s", cred, host, strings.TrimPrefix(u.Path, "/"), q.Encode()), nil
}
