package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// sqliteDriverName is the go-sqlite3 driver with the library's SQL functions registered.
const sqliteDriverName = "sqlite3_library"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// SQLite's own LOWER folds ASCII only; reader names and titles are Cyrillic.
			return conn.RegisterFunc("ulower", unicodeLower, true)
		},
	})
}

// unicodeLower lowercases TEXT and BLOB values. NULL arrives as a nil byte slice.
func unicodeLower(value any) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(v)
	case []byte:
		return strings.ToLower(string(v))
	default:
		return strings.ToLower(fmt.Sprint(v))
	}
}

func openSQLite(path string) gorm.Dialector {
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: path})
}
