package database

import (
	"context"

	"github.com/library-desk/librarian/internal/entities"
)

// FindAuthorID returns the id of the author with exactly this full name.
func (d *Database) FindAuthorID(ctx context.Context, fullName string) (uint, error) {
	var authors []entities.Author
	err := d.DB.WithContext(ctx).Select("id").
		Where("full_name = ?", fullName).
		Order("id").Limit(1).
		Find(&authors).Error
	if err != nil {
		return 0, failed("find author", err)
	}
	if len(authors) == 0 {
		return 0, ErrNotFound
	}
	return authors[0].ID, nil
}

func (d *Database) AddAuthor(ctx context.Context, author entities.Author) error {
	return d.Insert(ctx, entities.Author{}.TableName(), map[string]any{
		"full_name": author.FullName,
		"country":   author.Country,
	})
}

func (d *Database) Themes(ctx context.Context) ([]entities.Theme, error) {
	var themes []entities.Theme
	if err := d.DB.WithContext(ctx).Order("id").Find(&themes).Error; err != nil {
		return nil, failed("list themes", err)
	}
	return themes, nil
}

// AddTheme creates a theme and returns it with the id the database assigned.
func (d *Database) AddTheme(ctx context.Context, name string) (*entities.Theme, error) {
	theme := entities.Theme{Name: name}
	if err := d.DB.WithContext(ctx).Create(&theme).Error; err != nil {
		return nil, failed("add theme", err)
	}
	return &theme, nil
}

func (d *Database) AddBook(ctx context.Context, book entities.Book) error {
	var year any
	if book.Year != nil {
		year = *book.Year
	}
	return d.Insert(ctx, entities.Book{}.TableName(), map[string]any{
		"library_id": book.LibraryID,
		"theme_id":   book.ThemeID,
		"author_id":  book.AuthorID,
		"title":      book.Title,
		"publisher":  book.Publisher,
		"place":      book.Place,
		"year":       year,
		"quantity":   book.Quantity,
	})
}

// AvailableBooks lists books with at least one copy on the shelf.
func (d *Database) AvailableBooks(ctx context.Context) ([]entities.BookSummary, error) {
	var books []entities.BookSummary
	err := d.DB.WithContext(ctx).Model(&entities.Book{}).
		Select("id, title").
		Where("quantity > 0").
		Order("id").
		Scan(&books).Error
	if err != nil {
		return nil, failed("available books", err)
	}
	return books, nil
}

// FindBookByTitle matches the title exactly, case included.
func (d *Database) FindBookByTitle(ctx context.Context, title string) ([]entities.BookChoice, error) {
	var books []entities.BookChoice
	err := d.DB.WithContext(ctx).Model(&entities.Book{}).
		Select("id, library_id, title").
		Where("title = ? AND quantity > 0", title).
		Order("id").
		Scan(&books).Error
	if err != nil {
		return nil, failed("find book", err)
	}
	return books, nil
}

// SearchBooksByTitle matches any part of the title, ignoring case.
func (d *Database) SearchBooksByTitle(ctx context.Context, term string) ([]entities.BookChoice, error) {
	var books []entities.BookChoice
	err := d.DB.WithContext(ctx).Model(&entities.Book{}).
		Select("id, library_id, title").
		Where(d.ilike("title")+" AND quantity > 0", "%"+term+"%").
		Order("id").
		Scan(&books).Error
	if err != nil {
		return nil, failed("search books", err)
	}
	return books, nil
}

// AllBooksInfo lists every book with its author and theme names.
func (d *Database) AllBooksInfo(ctx context.Context) ([]entities.BookInfo, error) {
	var books []entities.BookInfo
	err := d.DB.WithContext(ctx).Table("books AS b").
		Select("b.id AS id, b.title AS title, a.full_name AS author_name, t.name AS theme_name, b.quantity AS quantity").
		Joins("JOIN authors a ON a.id = b.author_id").
		Joins("JOIN themes t ON t.id = b.theme_id").
		Order("b.id").
		Scan(&books).Error
	if err != nil {
		return nil, failed("list books", err)
	}
	return books, nil
}
