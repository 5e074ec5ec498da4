package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/library-desk/librarian/internal/config"
	"github.com/library-desk/librarian/internal/entities"
)

// setupTestDB creates a fresh SQLite database with the library schema
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.Database{
		Driver:       config.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "library.db"),
		Bootstrap:    true,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedAuthor(t *testing.T, db *Database, name string) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.AddAuthor(ctx, entities.Author{FullName: name, Country: "Russia"}))
	id, err := db.FindAuthorID(ctx, name)
	require.NoError(t, err)
	return id
}

func seedTheme(t *testing.T, db *Database, name string) uint {
	t.Helper()
	theme, err := db.AddTheme(context.Background(), name)
	require.NoError(t, err)
	return theme.ID
}

func seedBook(t *testing.T, db *Database, title string, quantity int) uint {
	t.Helper()
	ctx := context.Background()
	authorID := seedAuthor(t, db, "Author of "+title)
	themeID := seedTheme(t, db, "Theme of "+title)
	require.NoError(t, db.AddBook(ctx, entities.Book{
		LibraryID: 1,
		ThemeID:   themeID,
		AuthorID:  authorID,
		Title:     title,
		Quantity:  quantity,
	}))
	books, err := db.Execute(ctx, "SELECT id FROM books WHERE title = ?", title)
	require.NoError(t, err)
	require.Len(t, books.Rows, 1)
	id, ok := books.Rows[0]["id"].(int64)
	require.True(t, ok)
	return uint(id)
}

func seedReader(t *testing.T, db *Database, name string) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, db.AddReader(ctx, entities.Reader{FullName: name, Address: "Main st. 1", Phone: "555-01"}))
	readers, err := db.FindReaders(ctx, name)
	require.NoError(t, err)
	require.NotEmpty(t, readers)
	return readers[len(readers)-1].ID
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(config.Database{Driver: "oracle"})
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("write statements commit and report affected rows", func(t *testing.T) {
		result, err := db.Execute(ctx, "INSERT INTO themes (name) VALUES (?)", "Poetry")
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.RowsAffected)
	})

	t.Run("select returns rows keyed by column", func(t *testing.T) {
		result, err := db.Execute(ctx, "SELECT name, id FROM themes WHERE name = ?", "Poetry")
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "id"}, result.Columns)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "Poetry", result.Rows[0].String("name"))
	})

	t.Run("empty select is not a failure", func(t *testing.T) {
		result, err := db.Execute(ctx, "SELECT id FROM themes WHERE name = ?", "Nothing")
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result.Rows)
	})

	t.Run("rejected statement returns the sentinel", func(t *testing.T) {
		result, err := db.Execute(ctx, "SELECT * FROM no_such_table")
		assert.ErrorIs(t, err, ErrStatementFailed)
		assert.Nil(t, result)

		result, err = db.Execute(ctx, "INSERT INTO no_such_table (x) VALUES (?)", 1)
		assert.ErrorIs(t, err, ErrStatementFailed)
		assert.Nil(t, result)
	})

	t.Run("leading whitespace still reads", func(t *testing.T) {
		result, err := db.Execute(ctx, "\n  select count(*) AS n FROM themes")
		require.NoError(t, err)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "1", result.Rows[0].String("n"))
	})
}

func TestRow_String(t *testing.T) {
	row := Row{
		"title":       "Dead Souls",
		"quantity":    int64(2),
		"year":        nil,
		"return_date": time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, "Dead Souls", row.String("title"))
	assert.Equal(t, "2", row.String("quantity"))
	assert.Equal(t, "2020-01-15", row.String("return_date"))
	assert.Empty(t, row.String("year"))
	assert.Empty(t, row.String("missing"))
}

func TestInsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.Insert(ctx, "readers", map[string]any{
		"phone":     "555-77",
		"full_name": "Anna Karenina",
		"address":   "Moscow",
	})
	require.NoError(t, err)

	result, err := db.Execute(ctx, "SELECT full_name, address, phone FROM readers")
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Anna Karenina", result.Rows[0].String("full_name"))
	assert.Equal(t, "Moscow", result.Rows[0].String("address"))
	assert.Equal(t, "555-77", result.Rows[0].String("phone"))
}

func TestInsert_EmptyRecord(t *testing.T) {
	db := setupTestDB(t)

	err := db.Insert(context.Background(), "readers", map[string]any{})
	assert.Error(t, err)
}

func TestInsert_UnknownTable(t *testing.T) {
	db := setupTestDB(t)

	err := db.Insert(context.Background(), "shelves", map[string]any{"name": "A"})
	assert.ErrorIs(t, err, ErrStatementFailed)
}

func TestFindAuthorID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedAuthor(t, db, "Leo Tolstoy")
	assert.NotZero(t, id)

	found, err := db.FindAuthorID(ctx, "Leo Tolstoy")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	_, err = db.FindAuthorID(ctx, "Leo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStatementFailed)
}

func TestAddTheme_ReturnsAssignedID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// A gap in the sequence: the new id is not len(themes)+1.
	_, err := db.Execute(ctx, "INSERT INTO themes (id, name) VALUES (?, ?)", 10, "History")
	require.NoError(t, err)

	theme, err := db.AddTheme(ctx, "Science")
	require.NoError(t, err)
	assert.Equal(t, uint(11), theme.ID)
	assert.Equal(t, "Science", theme.Name)
}

func TestThemes_ListsAddedThemeOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedTheme(t, db, "History")
	seedTheme(t, db, "Science")

	themes, err := db.Themes(ctx)
	require.NoError(t, err)

	count := 0
	for _, theme := range themes {
		if theme.Name == "Science" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Len(t, themes, 2)
}

func TestFindReaders_PartialCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedReader(t, db, "Ivan Petrov")
	seedReader(t, db, "Petra Ivanova")
	seedReader(t, db, "John Smith")

	readers, err := db.FindReaders(ctx, "IVAN")
	require.NoError(t, err)
	require.Len(t, readers, 2)
	assert.Equal(t, "Ivan Petrov", readers[0].FullName)
	assert.Equal(t, "Petra Ivanova", readers[1].FullName)

	readers, err = db.FindReaders(ctx, "smi")
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "John Smith", readers[0].FullName)

	readers, err = db.FindReaders(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, readers)
}

func TestFindBookByTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedBook(t, db, "War and Peace", 3)
	seedBook(t, db, "Lost Book", 0)

	books, err := db.FindBookByTitle(ctx, "War and Peace")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, id, books[0].ID)
	assert.Equal(t, uint(1), books[0].LibraryID)
	assert.Equal(t, "War and Peace", books[0].Title)

	t.Run("exact match is case sensitive", func(t *testing.T) {
		books, err := db.FindBookByTitle(ctx, "war and peace")
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("books without copies are skipped", func(t *testing.T) {
		books, err := db.FindBookByTitle(ctx, "Lost Book")
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestSearchBooksByTitle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedBook(t, db, "War and Peace", 3)
	seedBook(t, db, "The Art of War", 1)
	seedBook(t, db, "War Diaries", 0)

	books, err := db.SearchBooksByTitle(ctx, "war")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "War and Peace", books[0].Title)
	assert.Equal(t, "The Art of War", books[1].Title)
}

func TestSearch_CyrillicIgnoresCase(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedReader(t, db, "Иван Петров")
	seedReader(t, db, "Пётр Сидоров")
	seedBook(t, db, "Война и мир", 2)

	readers, err := db.FindReaders(ctx, "иван")
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "Иван Петров", readers[0].FullName)

	readers, err = db.FindReaders(ctx, "ПЕТ")
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "Иван Петров", readers[0].FullName)

	books, err := db.SearchBooksByTitle(ctx, "война")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Война и мир", books[0].Title)

	books, err = db.SearchBooksByTitle(ctx, "МИР")
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestAvailableBooks(t *testing.T) {
	db := setupTestDB(t)

	seedBook(t, db, "On Shelf", 2)
	seedBook(t, db, "All Lent", 0)

	books, err := db.AvailableBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "On Shelf", books[0].Title)
}

func TestAllBooksInfo(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	authorID := seedAuthor(t, db, "Fyodor Dostoevsky")
	themeID := seedTheme(t, db, "Novel")
	year := 1866
	require.NoError(t, db.AddBook(ctx, entities.Book{
		LibraryID: 1,
		ThemeID:   themeID,
		AuthorID:  authorID,
		Title:     "Crime and Punishment",
		Publisher: "The Russian Messenger",
		Place:     "Saint Petersburg",
		Year:      &year,
		Quantity:  4,
	}))

	books, err := db.AllBooksInfo(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.NotZero(t, books[0].ID)
	assert.Equal(t, "Crime and Punishment", books[0].Title)
	assert.Equal(t, "Fyodor Dostoevsky", books[0].AuthorName)
	assert.Equal(t, "Novel", books[0].ThemeName)
	assert.Equal(t, 4, books[0].Quantity)
}

func TestIssueBook(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bookID := seedBook(t, db, "Dead Souls", 1)
	readerID := seedReader(t, db, "Ivan Petrov")
	returnDate := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

	err := db.IssueBook(ctx, entities.Loan{
		LibraryID:  1,
		BookID:     bookID,
		ReaderID:   readerID,
		ReturnDate: returnDate,
	})
	require.NoError(t, err)

	var loans []entities.Loan
	require.NoError(t, db.DB.Find(&loans).Error)
	require.Len(t, loans, 1)
	assert.Equal(t, bookID, loans[0].BookID)
	assert.Equal(t, readerID, loans[0].ReaderID)
	assert.Equal(t, "2030-05-01", loans[0].ReturnDate.Format("2006-01-02"))

	t.Run("quantity is not decremented", func(t *testing.T) {
		var book entities.Book
		require.NoError(t, db.DB.First(&book, bookID).Error)
		assert.Equal(t, 1, book.Quantity)
	})
}

func TestIssueBook_Unavailable(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bookID := seedBook(t, db, "All Lent", 0)
	readerID := seedReader(t, db, "Ivan Petrov")

	err := db.IssueBook(ctx, entities.Loan{LibraryID: 1, BookID: bookID, ReaderID: readerID, ReturnDate: time.Now()})
	assert.ErrorIs(t, err, ErrBookUnavailable)

	err = db.IssueBook(ctx, entities.Loan{LibraryID: 1, BookID: 9999, ReaderID: readerID, ReturnDate: time.Now()})
	assert.ErrorIs(t, err, ErrBookUnavailable)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Loan{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOverdueLoans(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	bookID := seedBook(t, db, "Dead Souls", 2)
	readerID := seedReader(t, db, "Ivan Petrov")

	require.NoError(t, db.IssueBook(ctx, entities.Loan{
		LibraryID: 1, BookID: bookID, ReaderID: readerID,
		ReturnDate: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, db.IssueBook(ctx, entities.Loan{
		LibraryID: 1, BookID: bookID, ReaderID: readerID,
		ReturnDate: time.Date(2999, 1, 15, 0, 0, 0, 0, time.UTC),
	}))

	result, err := db.OverdueLoans(ctx)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Contains(t, result.Columns, "book_title")
	assert.Equal(t, "Dead Souls", result.Rows[0].String("book_title"))
	assert.Equal(t, "Ivan Petrov", result.Rows[0].String("reader_name"))
}
