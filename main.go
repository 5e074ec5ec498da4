package main

import (
	"fmt"
	"os"

	"github.com/library-desk/librarian/internal/cli"
	"github.com/library-desk/librarian/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	cfg := config.NewConfig()

	name := "menu"
	var args []string
	if len(os.Args) > 1 {
		name = os.Args[1]
		args = os.Args[2:]
	}

	var cmd command
	switch name {
	case "menu":
		cmd = cli.NewMenuCommand(cfg)
	case "books":
		cmd = cli.NewBooksCommand(cfg)
	case "overdue":
		cmd = cli.NewOverdueCommand(cfg)
	case "version":
		fmt.Printf("librarian %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  menu     Interactive librarian menu (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  books    Print the book catalog\n")
	fmt.Fprintf(os.Stderr, "  overdue  Print loans past their return date\n")
	fmt.Fprintf(os.Stderr, "  version  Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
