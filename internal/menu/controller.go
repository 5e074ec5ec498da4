// Package menu implements the interactive librarian menu: it collects input,
// turns fuzzy names and titles into row ids and calls the data access layer.
//
// Every action is a straight sequence of prompts. Empty required input, a bad
// number or a failed lookup ends the action early; database failures are
// reported and the menu is shown again. Only closed input, cancellation or
// choice 8 ends Run.
package menu

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/library-desk/librarian/internal/console"
	"github.com/library-desk/librarian/internal/database"
	"github.com/library-desk/librarian/internal/entities"
)

const dateLayout = "2006-01-02"

type Controller struct {
	store     Store
	prompt    *console.Prompter
	libraryID uint
}

// NewController creates a menu bound to store. New books are attached to libraryID.
func NewController(store Store, prompt *console.Prompter, libraryID uint) *Controller {
	return &Controller{
		store:     store,
		prompt:    prompt,
		libraryID: libraryID,
	}
}

// Run shows the menu until the operator exits or input ends.
func (c *Controller) Run(ctx context.Context) error {
	for {
		c.showMenu()

		choice, err := c.prompt.Ask(ctx, "Выберите действие: ")
		if err != nil {
			return inputDone(err)
		}

		switch choice {
		case "1":
			err = c.addBook(ctx)
		case "2":
			c.listBooks(ctx)
		case "3":
			err = c.issueBook(ctx)
		case "4":
			c.listOverdue(ctx)
		case "5":
			err = c.addAuthor(ctx)
		case "6":
			err = c.addTheme(ctx)
		case "7":
			err = c.addReader(ctx)
		case "8":
			return nil
		default:
			c.prompt.Println("Неверный выбор!")
		}

		if err != nil {
			return inputDone(err)
		}
	}
}

// inputDone treats the end of input as a normal exit.
func inputDone(err error) error {
	if errors.Is(err, console.ErrInputClosed) {
		return nil
	}
	return err
}

func (c *Controller) showMenu() {
	c.prompt.Println("\n=== Библиотека ===")
	c.prompt.Println("1. Добавить книгу")
	c.prompt.Println("2. Показать все книги")
	c.prompt.Println("3. Выдать книгу читателю")
	c.prompt.Println("4. Показать просроченные книги")
	c.prompt.Println("5. Добавить автора")
	c.prompt.Println("6. Добавить тематику")
	c.prompt.Println("7. Добавить читателя")
	c.prompt.Println("8. Выход")
}

func (c *Controller) failed(err error) {
	c.prompt.Printf("Операция не выполнена: %v\n", err)
}

func (c *Controller) addBook(ctx context.Context) error {
	title, err := c.prompt.Ask(ctx, "Название книги: ")
	if err != nil {
		return err
	}
	if title == "" {
		c.prompt.Println("Название не может быть пустым!")
		return nil
	}

	authorName, err := c.prompt.Ask(ctx, "ФИО автора: ")
	if err != nil {
		return err
	}
	if authorName == "" {
		c.prompt.Println("ФИО автора не может быть пустым!")
		return nil
	}

	authorID, ok, err := c.resolveAuthor(ctx, authorName)
	if err != nil || !ok {
		return err
	}

	themeID, ok, err := c.selectTheme(ctx)
	if err != nil || !ok {
		return err
	}

	publisher, err := c.prompt.Ask(ctx, "Издательство: ")
	if err != nil {
		return err
	}
	place, err := c.prompt.Ask(ctx, "Место издания: ")
	if err != nil {
		return err
	}
	yearText, err := c.prompt.Ask(ctx, "Год издания: ")
	if err != nil {
		return err
	}
	quantityText, err := c.prompt.Ask(ctx, "Количество: ")
	if err != nil {
		return err
	}
	if quantityText == "" {
		quantityText = "1"
	}

	var year *int
	if yearText != "" {
		y, convErr := strconv.Atoi(yearText)
		if convErr != nil {
			c.prompt.Println("Неверный год издания!")
			return nil
		}
		year = &y
	}

	quantity, convErr := strconv.Atoi(quantityText)
	if convErr != nil || quantity < 0 {
		c.prompt.Println("Неверное количество!")
		return nil
	}

	err = c.store.AddBook(ctx, entities.Book{
		LibraryID: c.libraryID,
		ThemeID:   themeID,
		AuthorID:  authorID,
		Title:     title,
		Publisher: publisher,
		Place:     place,
		Year:      year,
		Quantity:  quantity,
	})
	if err != nil {
		c.failed(err)
		return nil
	}

	c.prompt.Println("Книга успешно добавлена!")
	return nil
}

// resolveAuthor finds the author by exact name, creating it when missing.
func (c *Controller) resolveAuthor(ctx context.Context, name string) (uint, bool, error) {
	id, err := c.store.FindAuthorID(ctx, name)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		c.failed(err)
		return 0, false, nil
	}

	c.prompt.Println("Автор не найден. Добавим нового.")
	country, err := c.prompt.Ask(ctx, "Страна автора: ")
	if err != nil {
		return 0, false, err
	}

	if err := c.store.AddAuthor(ctx, entities.Author{FullName: name, Country: country}); err != nil {
		c.failed(err)
		return 0, false, nil
	}

	id, err = c.store.FindAuthorID(ctx, name)
	if err != nil {
		c.failed(err)
		return 0, false, nil
	}
	return id, true, nil
}

// selectTheme lists themes from 1; "0" creates a new one and uses its real id.
func (c *Controller) selectTheme(ctx context.Context) (uint, bool, error) {
	themes, err := c.store.Themes(ctx)
	if err != nil {
		c.failed(err)
		return 0, false, nil
	}

	if len(themes) == 0 {
		c.prompt.Println("Нет доступных тематик!")
	} else {
		c.prompt.Println("\nДоступные тематики:")
		for i, theme := range themes {
			c.prompt.Printf("%d. %s\n", i+1, theme.Name)
		}
	}
	c.prompt.Println("\n0. Добавить новую тематику")

	choice, err := c.prompt.Ask(ctx, "Выберите номер: ")
	if err != nil {
		return 0, false, err
	}

	if choice == "0" {
		name, err := c.prompt.Ask(ctx, "Введите название тематики: ")
		if err != nil {
			return 0, false, err
		}
		if name == "" {
			c.prompt.Println("Название не может быть пустым!")
			return 0, false, nil
		}
		theme, err := c.store.AddTheme(ctx, name)
		if err != nil {
			c.failed(err)
			return 0, false, nil
		}
		c.prompt.Println("Тематика добавлена!")
		return theme.ID, true, nil
	}

	i, ok := c.parseChoice(choice, len(themes))
	if !ok {
		return 0, false, nil
	}
	return themes[i].ID, true, nil
}

// selectBook prefers an exact title and falls back to a partial search.
func (c *Controller) selectBook(ctx context.Context) (entities.BookChoice, bool, error) {
	title, err := c.prompt.Ask(ctx, "Введите название книги: ")
	if err != nil {
		return entities.BookChoice{}, false, err
	}
	if title == "" {
		c.prompt.Println("Название не может быть пустым!")
		return entities.BookChoice{}, false, nil
	}

	books, err := c.store.FindBookByTitle(ctx, title)
	if err != nil {
		c.failed(err)
		return entities.BookChoice{}, false, nil
	}
	if len(books) > 0 {
		return books[0], true, nil
	}

	books, err = c.store.SearchBooksByTitle(ctx, title)
	if err != nil {
		c.failed(err)
		return entities.BookChoice{}, false, nil
	}

	switch len(books) {
	case 0:
		c.prompt.Println("Книги не найдены!")
		return entities.BookChoice{}, false, nil
	case 1:
		c.prompt.Printf("Найдена книга: %s\n", books[0].Title)
		return books[0], true, nil
	}

	c.prompt.Println("\nНайдены похожие книги:")
	for i, book := range books {
		c.prompt.Printf("%d. %s\n", i+1, book.Title)
	}

	choice, err := c.prompt.Ask(ctx, "Выберите номер книги: ")
	if err != nil {
		return entities.BookChoice{}, false, err
	}
	i, ok := c.parseChoice(choice, len(books))
	if !ok {
		return entities.BookChoice{}, false, nil
	}
	return books[i], true, nil
}

// selectReader auto-selects a single match and lists several.
func (c *Controller) selectReader(ctx context.Context) (uint, bool, error) {
	name, err := c.prompt.Ask(ctx, "Введите ФИО читателя: ")
	if err != nil {
		return 0, false, err
	}
	if name == "" {
		c.prompt.Println("ФИО не может быть пустым!")
		return 0, false, nil
	}

	readers, err := c.store.FindReaders(ctx, name)
	if err != nil {
		c.failed(err)
		return 0, false, nil
	}

	switch len(readers) {
	case 0:
		c.prompt.Println("Читатель не найден!")
		return 0, false, nil
	case 1:
		return readers[0].ID, true, nil
	}

	c.prompt.Println("\nНайдено несколько читателей:")
	for i, reader := range readers {
		c.prompt.Printf("%d. %s\n", i+1, reader.FullName)
	}

	choice, err := c.prompt.Ask(ctx, "Выберите номер: ")
	if err != nil {
		return 0, false, err
	}
	i, ok := c.parseChoice(choice, len(readers))
	if !ok {
		return 0, false, nil
	}
	return readers[i].ID, true, nil
}

// parseChoice converts a 1-based answer into an index below n.
func (c *Controller) parseChoice(answer string, n int) (int, bool) {
	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > n {
		c.prompt.Println("Неверный выбор!")
		return 0, false
	}
	return i - 1, true
}

func (c *Controller) issueBook(ctx context.Context) error {
	book, ok, err := c.selectBook(ctx)
	if err != nil || !ok {
		return err
	}

	readerID, ok, err := c.selectReader(ctx)
	if err != nil || !ok {
		return err
	}

	dateText, err := c.prompt.Ask(ctx, "Дата возврата (ГГГГ-ММ-ДД): ")
	if err != nil {
		return err
	}
	returnDate, parseErr := time.Parse(dateLayout, dateText)
	if parseErr != nil {
		c.prompt.Println("Неверный формат даты! Ожидается ГГГГ-ММ-ДД.")
		return nil
	}

	err = c.store.IssueBook(ctx, entities.Loan{
		LibraryID:  book.LibraryID,
		BookID:     book.ID,
		ReaderID:   readerID,
		ReturnDate: returnDate,
	})
	switch {
	case errors.Is(err, database.ErrBookUnavailable):
		c.prompt.Println("Книга недоступна для выдачи!")
	case err != nil:
		c.failed(err)
	default:
		c.prompt.Println("Книга выдана!")
	}
	return nil
}

func (c *Controller) listBooks(ctx context.Context) {
	books, err := c.store.AllBooksInfo(ctx)
	if err != nil {
		c.failed(err)
		return
	}
	WriteBooks(c.prompt.Writer(), books)
}

func (c *Controller) listOverdue(ctx context.Context) {
	result, err := c.store.OverdueLoans(ctx)
	if err != nil {
		c.failed(err)
		return
	}
	WriteOverdue(c.prompt.Writer(), result)
}

func (c *Controller) addAuthor(ctx context.Context) error {
	name, err := c.prompt.Ask(ctx, "ФИО автора: ")
	if err != nil {
		return err
	}
	if name == "" {
		c.prompt.Println("ФИО не может быть пустым!")
		return nil
	}

	country, err := c.prompt.Ask(ctx, "Страна: ")
	if err != nil {
		return err
	}

	if err := c.store.AddAuthor(ctx, entities.Author{FullName: name, Country: country}); err != nil {
		c.failed(err)
		return nil
	}
	c.prompt.Println("Автор добавлен!")
	return nil
}

func (c *Controller) addTheme(ctx context.Context) error {
	name, err := c.prompt.Ask(ctx, "Название тематики: ")
	if err != nil {
		return err
	}
	if name == "" {
		c.prompt.Println("Название не может быть пустым!")
		return nil
	}

	if _, err := c.store.AddTheme(ctx, name); err != nil {
		c.failed(err)
		return nil
	}
	c.prompt.Println("Тематика добавлена!")
	return nil
}

func (c *Controller) addReader(ctx context.Context) error {
	name, err := c.prompt.Ask(ctx, "ФИО читателя: ")
	if err != nil {
		return err
	}
	if name == "" {
		c.prompt.Println("ФИО не может быть пустым!")
		return nil
	}

	address, err := c.prompt.Ask(ctx, "Адрес: ")
	if err != nil {
		return err
	}
	phone, err := c.prompt.Ask(ctx, "Телефон: ")
	if err != nil {
		return err
	}

	reader := entities.Reader{FullName: name, Address: address, Phone: phone}
	if err := c.store.AddReader(ctx, reader); err != nil {
		c.failed(err)
		return nil
	}
	c.prompt.Println("Читатель добавлен!")
	return nil
}
