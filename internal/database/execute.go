package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"gorm.io/gorm"
)

// Row is one result row keyed by column name.
type Row map[string]any

// String returns the column value formatted for display. Dates print as
// YYYY-MM-DD; missing and NULL values print as an empty string.
func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.DateOnly)
	default:
		return fmt.Sprint(v)
	}
}

// Result holds the outcome of Execute. Columns keeps the order the database
// reported them in, for display.
type Result struct {
	Columns      []string
	Rows         []Row
	RowsAffected int64
}

// Execute runs a single parameterized statement. SELECT statements return their
// rows; anything else runs in its own transaction, committed on success and
// rolled back on error. Failures are logged and wrapped in ErrStatementFailed.
func (d *Database) Execute(ctx context.Context, statement string, args ...any) (*Result, error) {
	if isRead(statement) {
		result, err := d.query(ctx, statement, args...)
		if err != nil {
			return nil, failed("query", err)
		}
		return result, nil
	}

	var affected int64
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(statement, args...)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return nil, failed("exec", err)
	}
	return &Result{RowsAffected: affected}, nil
}

// Insert builds an INSERT for table from record and runs it through Execute.
// Columns are emitted in sorted key order with matching placeholders.
func (d *Database) Insert(ctx context.Context, table string, record map[string]any) error {
	if len(record) == 0 {
		return fmt.Errorf("insert into %s: no columns given", table)
	}

	statement, args, err := goqu.Insert(table).Rows(goqu.Record(record)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build insert into %s: %w", table, err)
	}

	_, err = d.Execute(ctx, statement, args...)
	return err
}

func isRead(statement string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(statement)), "SELECT")
}

func (d *Database) query(ctx context.Context, statement string, args ...any) (*Result, error) {
	rows, err := d.DB.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &Result{Columns: columns, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
				continue
			}
			row[column] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
