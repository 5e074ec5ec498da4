package entities

import (
	"time"
)

type Author struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null;index" json:"full_name"`
	Country  string `gorm:"size:100" json:"country"`
}

func (Author) TableName() string {
	return "authors"
}

// Theme is a subject category a book is filed under.
type Theme struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Theme) TableName() string {
	return "themes"
}

type Reader struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null;index" json:"full_name"`
	Address  string `gorm:"size:500" json:"address"`
	Phone    string `gorm:"size:50" json:"phone"`
}

func (Reader) TableName() string {
	return "readers"
}

type Book struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	LibraryID uint    `gorm:"not null;index" json:"library_id"`
	ThemeID   uint    `gorm:"not null;index" json:"theme_id"`
	AuthorID  uint    `gorm:"not null;index" json:"author_id"`
	Title     string  `gorm:"size:500;not null;index" json:"title"`
	Publisher string  `gorm:"size:255" json:"publisher"`
	Place     string  `gorm:"size:255" json:"place"`
	Year      *int    `json:"year,omitempty"`
	Quantity  int     `gorm:"not null;default:1;check:quantity >= 0" json:"quantity"`
	Author    *Author `gorm:"foreignKey:AuthorID" json:"-"`
	Theme     *Theme  `gorm:"foreignKey:ThemeID" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// Loan records a book issued to a reader. Loans are never closed or deleted.
type Loan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	LibraryID  uint      `gorm:"not null;index" json:"library_id"`
	BookID     uint      `gorm:"not null;index" json:"book_id"`
	ReaderID   uint      `gorm:"not null;index" json:"reader_id"`
	ReturnDate time.Time `gorm:"type:date;not null" json:"return_date"`
	Book       *Book     `gorm:"foreignKey:BookID" json:"-"`
	Reader     *Reader   `gorm:"foreignKey:ReaderID" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}
