package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/library-desk/librarian/internal/config"
	"github.com/library-desk/librarian/internal/entities"
)

var (
	// ErrStatementFailed marks a statement the database rejected. It is never
	// returned for a query that simply matched no rows.
	ErrStatementFailed = errors.New("statement failed")

	// ErrNotFound is returned by single-row lookups that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrBookUnavailable is returned when a loan is requested for a book with no copies left.
	ErrBookUnavailable = errors.New("book is not available")
)

// overdueView lists loans whose return date has passed.
const overdueView = `overdue_loans AS
SELECT l.id AS loan_id,
       l.library_id AS library_id,
       b.title AS book_title,
       r.full_name AS reader_name,
       r.phone AS reader_phone,
       l.return_date AS return_date
FROM loans l
JOIN books b ON b.id = l.book_id
JOIN readers r ON r.id = l.reader_id
WHERE l.return_date < CURRENT_DATE`

type Database struct {
	DB     *gorm.DB
	driver string
}

func NewDatabase(cfg config.Database) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{DB: db, driver: cfg.Driver}

	if cfg.Bootstrap {
		if err := database.bootstrap(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	log.Printf("Connected to %s database", cfg.Driver)

	return database, nil
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DriverSQLite:
		return openSQLite(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	log.Printf("Database connection closed")
	return nil
}

// bootstrap creates the tables and the overdue view when they are missing.
// Existing tables are left as they are.
func (d *Database) bootstrap() error {
	err := d.DB.AutoMigrate(
		&entities.Author{},
		&entities.Theme{},
		&entities.Reader{},
		&entities.Book{},
		&entities.Loan{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	create := "CREATE VIEW IF NOT EXISTS "
	if d.driver == config.DriverPostgres {
		create = "CREATE OR REPLACE VIEW "
	}
	if err := d.DB.Exec(create + overdueView).Error; err != nil {
		return fmt.Errorf("failed to create overdue view: %w", err)
	}
	return nil
}

// ilike renders a case-insensitive LIKE condition on column.
func (d *Database) ilike(column string) string {
	if d.driver == config.DriverPostgres {
		return column + " ILIKE ?"
	}
	return "ulower(" + column + ") LIKE ulower(?)"
}

// failed logs a rejected statement and wraps it in ErrStatementFailed.
func failed(op string, err error) error {
	log.Printf("Statement failed (%s): %v", op, err)
	return fmt.Errorf("%w: %w", ErrStatementFailed, err)
}
