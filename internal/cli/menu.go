package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/library-desk/librarian/internal/config"
	"github.com/library-desk/librarian/internal/console"
	"github.com/library-desk/librarian/internal/menu"
)

// MenuCommand runs the interactive librarian menu.
type MenuCommand struct {
	LibraryID uint

	db databaseFlags
}

func NewMenuCommand(cfg *config.Config) *MenuCommand {
	return &MenuCommand{
		LibraryID: cfg.Library.ID,
		db:        newDatabaseFlags(cfg),
	}
}

func (cmd *MenuCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)

	cmd.db.register(fs)
	fs.UintVar(&cmd.LibraryID, "library", cmd.LibraryID, "Library branch id recorded on new books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s menu [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Interactive menu for adding books, authors, themes and readers,\n")
		fmt.Fprintf(os.Stderr, "issuing books and listing overdue loans.\n\n")
		fmt.Fprintf(os.Stderr, "Connection settings come from DB_* environment variables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Local SQLite file with a fresh schema:\n")
		fmt.Fprintf(os.Stderr, "  %s menu -driver sqlite -db ./library.db -bootstrap\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *MenuCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cmd.db.open()
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	defer prompt.Close()
	controller := menu.NewController(db, prompt, cmd.LibraryID)

	if err := controller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
