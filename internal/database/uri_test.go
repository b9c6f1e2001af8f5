package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want Target
	}{
		{
			name: "relative sqlite file",
			uri:  "sqlite:///mydatabase.db",
			want: Target{Dialect: DialectSQLite, DSN: "mydatabase.db"},
		},
		{
			name: "absolute sqlite file",
			uri:  "sqlite:////var/lib/app/data.db",
			want: Target{Dialect: DialectSQLite, DSN: "/var/lib/app/data.db"},
		},
		{
			name: "bare sqlite is memory",
			uri:  "sqlite://",
			want: Target{Dialect: DialectSQLite, DSN: ":memory:"},
		},
		{
			name: "explicit memory",
			uri:  "sqlite:///:memory:",
			want: Target{Dialect: DialectSQLite, DSN: ":memory:"},
		},
		{
			name: "postgresql with driver suffix",
			uri:  "postgresql+psycopg2://app:secret@db:5432/contacts?sslmode=disable",
			want: Target{Dialect: DialectPostgres, DSN: "postgres://app:secret@db:5432/contacts?sslmode=disable"},
		},
		{
			name: "postgres",
			uri:  "postgres://app@localhost/contacts",
			want: Target{Dialect: DialectPostgres, DSN: "postgres://app@localhost/contacts"},
		},
		{
			name: "mysql default port",
			uri:  "mysql://app:secret@db/contacts",
			want: Target{Dialect: DialectMySQL, DSN: "app:secret@tcp(db:3306)/contacts?charset=utf8mb4&parseTime=true"},
		},
		{
			name: "mysql keeps params",
			uri:  "mysql+pymysql://root@127.0.0.1:3307/contacts?parseTime=false",
			want: Target{Dialect: DialectMySQL, DSN: "root@tcp(127.0.0.1:3307)/contacts?charset=utf8mb4&parseTime=false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURI_Errors(t *testing.T) {
	_, err := ParseURI("mydatabase.db")
	require.Error(t, err)

	_, err = ParseURI("://nothing")
	require.Error(t, err)

	_, err = ParseURI("oracle://scott:tiger@db/orcl")
	require.ErrorIs(t, err, ErrUnsupportedDialect)

	_, err = ParseURI("mysql:///contacts")
	require.Error(t, err)
}

func TestTarget_InMemory(t *testing.T) {
	assert.True(t, Target{Dialect: DialectSQLite, DSN: ":memory:"}.InMemory())
	assert.False(t, Target{Dialect: DialectSQLite, DSN: "mydatabase.db"}.InMemory())
	assert.False(t, Target{Dialect: DialectPostgres, DSN: ":memory:"}.InMemory())
}
