package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/library-desk/librarian/internal/config"
	"github.com/library-desk/librarian/internal/menu"
)

// BooksCommand prints the catalog once and exits.
type BooksCommand struct {
	Available bool
	Out       io.Writer

	db databaseFlags
}

func NewBooksCommand(cfg *config.Config) *BooksCommand {
	return &BooksCommand{
		Out: os.Stdout,
		db:  newDatabaseFlags(cfg),
	}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	cmd.db.register(fs)
	fs.BoolVar(&cmd.Available, "available", false, "Only list books with copies on the shelf")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List every book with its author, theme and quantity.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BooksCommand) Run() error {
	ctx := context.Background()

	db, err := cmd.db.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if cmd.Available {
		books, err := db.AvailableBooks(ctx)
		if err != nil {
			return err
		}
		menu.WriteAvailable(cmd.Out, books)
		return nil
	}

	books, err := db.AllBooksInfo(ctx)
	if err != nil {
		return err
	}
	menu.WriteBooks(cmd.Out, books)
	return nil
}

// OverdueCommand prints the overdue loans report once and exits.
type OverdueCommand struct {
	Out io.Writer

	db databaseFlags
}

func NewOverdueCommand(cfg *config.Config) *OverdueCommand {
	return &OverdueCommand{
		Out: os.Stdout,
		db:  newDatabaseFlags(cfg),
	}
}

func (cmd *OverdueCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("overdue", flag.ExitOnError)

	cmd.db.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s overdue [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List loans past their return date.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *OverdueCommand) Run() error {
	db, err := cmd.db.open()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.OverdueLoans(context.Background())
	if err != nil {
		return err
	}
	menu.WriteOverdue(cmd.Out, result)
	return nil
}
