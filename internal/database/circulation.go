package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/library-desk/librarian/internal/entities"
)

// FindReaders returns readers whose name contains name, ignoring case.
func (d *Database) FindReaders(ctx context.Context, name string) ([]entities.ReaderMatch, error) {
	var readers []entities.ReaderMatch
	err := d.DB.WithContext(ctx).Model(&entities.Reader{}).
		Select("id, full_name").
		Where(d.ilike("full_name"), "%"+name+"%").
		Order("id").
		Scan(&readers).Error
	if err != nil {
		return nil, failed("find readers", err)
	}
	return readers, nil
}

func (d *Database) AddReader(ctx context.Context, reader entities.Reader) error {
	return d.Insert(ctx, entities.Reader{}.TableName(), map[string]any{
		"full_name": reader.FullName,
		"address":   reader.Address,
		"phone":     reader.Phone,
	})
}

// IssueBook records a loan. The book row is re-read under a row lock in the
// same transaction, so a book whose last copy is gone cannot be issued.
// The stored quantity is left unchanged.
func (d *Database) IssueBook(ctx context.Context, loan entities.Loan) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var books []entities.Book
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id, quantity").
			Where("id = ?", loan.BookID).
			Limit(1).
			Find(&books).Error
		if err != nil {
			return err
		}
		if len(books) == 0 || books[0].Quantity <= 0 {
			return ErrBookUnavailable
		}

		loan.ID = 0
		return tx.Omit(clause.Associations).Create(&loan).Error
	})
	if errors.Is(err, ErrBookUnavailable) {
		return err
	}
	if err != nil {
		return failed("issue book", err)
	}
	return nil
}

// OverdueLoans reads the overdue_loans view. The view belongs to the database,
// so its rows are returned as they come.
func (d *Database) OverdueLoans(ctx context.Context) (*Result, error) {
	return d.Execute(ctx, "SELECT * FROM overdue_loans")
}
