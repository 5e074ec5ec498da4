package menu

import (
	"context"

	"github.com/library-desk/librarian/internal/database"
	"github.com/library-desk/librarian/internal/entities"
)

// Store is the data access the menu needs. Implemented by *database.Database.
type Store interface {
	FindAuthorID(ctx context.Context, fullName string) (uint, error)
	AddAuthor(ctx context.Context, author entities.Author) error
	Themes(ctx context.Context) ([]entities.Theme, error)
	AddTheme(ctx context.Context, name string) (*entities.Theme, error)
	AddBook(ctx context.Context, book entities.Book) error
	FindBookByTitle(ctx context.Context, title string) ([]entities.BookChoice, error)
	SearchBooksByTitle(ctx context.Context, term string) ([]entities.BookChoice, error)
	AllBooksInfo(ctx context.Context) ([]entities.BookInfo, error)
	FindReaders(ctx context.Context, name string) ([]entities.ReaderMatch, error)
	AddReader(ctx context.Context, reader entities.Reader) error
	IssueBook(ctx context.Context, loan entities.Loan) error
	OverdueLoans(ctx context.Context) (*database.Result, error)
}
