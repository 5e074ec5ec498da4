package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/library-desk/librarian/internal/database"
	"github.com/library-desk/librarian/internal/entities"
)

// WriteBooks prints the catalog listing, one book per line.
func WriteBooks(w io.Writer, books []entities.BookInfo) {
	if len(books) == 0 {
		fmt.Fprintln(w, "Книги не найдены!")
		return
	}
	fmt.Fprintln(w, "\nСписок книг:")
	for _, b := range books {
		fmt.Fprintf(w, "%d: %s (%s, %s) - %d шт.\n", b.ID, b.Title, b.AuthorName, b.ThemeName, b.Quantity)
	}
}

// WriteAvailable prints books that can be issued right now.
func WriteAvailable(w io.Writer, books []entities.BookSummary) {
	if len(books) == 0 {
		fmt.Fprintln(w, "Доступных книг нет")
		return
	}
	fmt.Fprintln(w, "\nДоступные книги:")
	for _, b := range books {
		fmt.Fprintf(w, "%d: %s\n", b.ID, b.Title)
	}
}

// WriteOverdue prints the overdue view in the column order the database reports.
func WriteOverdue(w io.Writer, result *database.Result) {
	if result == nil || len(result.Rows) == 0 {
		fmt.Fprintln(w, "Просроченных книг нет")
		return
	}
	fmt.Fprintln(w, "\nПросроченные книги:")
	for _, row := range result.Rows {
		fields := make([]string, 0, len(result.Columns))
		for _, column := range result.Columns {
			value := row.String(column)
			if value == "" {
				value = "-"
			}
			fields = append(fields, column+": "+value)
		}
		fmt.Fprintln(w, strings.Join(fields, ", "))
	}
}
