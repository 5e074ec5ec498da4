// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, schema bootstrap, sentinel errors
//	├── execute.go       # Generic Execute and Insert
//	├── catalog.go       # Authors, themes and books
//	└── circulation.go   # Readers, loans and the overdue report
//
// Every operation is a single statement except IssueBook, which checks
// availability and inserts the loan in one transaction.
//
// # Errors
//
// Rejected statements are logged here and returned wrapped in
// ErrStatementFailed. Lookups that match nothing are not errors: they return an
// empty slice, or ErrNotFound for FindAuthorID.
//
//	db, err := database.NewDatabase(cfg.Database)
//	if err != nil {
//		// connection failures are fatal for the caller
//	}
//	defer db.Close()
//
//	readers, err := db.FindReaders(ctx, "ivanov")
package database
