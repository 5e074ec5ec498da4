package config

// Defaults for the database connection
const (
	// DefaultDatabasePath is the SQLite file used when DB_DRIVER=sqlite
	DefaultDatabasePath = "./library.db"

	// DefaultLibraryID is the branch every new book and loan is attached to
	DefaultLibraryID = 1
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
