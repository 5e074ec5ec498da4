package cli

import (
	"flag"
	"fmt"

	"github.com/library-desk/librarian/internal/config"
	"github.com/library-desk/librarian/internal/database"
)

// databaseFlags lets a command override the environment configuration.
type databaseFlags struct {
	cfg       *config.Config
	driver    string
	path      string
	bootstrap bool
}

func newDatabaseFlags(cfg *config.Config) databaseFlags {
	return databaseFlags{
		cfg:       cfg,
		driver:    cfg.Database.Driver,
		path:      cfg.Database.Path,
		bootstrap: cfg.Database.Bootstrap,
	}
}

func (f *databaseFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.driver, "driver", f.driver, "Database driver: postgres or sqlite")
	fs.StringVar(&f.path, "db", f.path, "Path to the SQLite database file (sqlite driver only)")
	fs.BoolVar(&f.bootstrap, "bootstrap", f.bootstrap, "Create missing tables and the overdue view")
}

// open connects with the effective configuration. The caller owns Close.
func (f *databaseFlags) open() (*database.Database, error) {
	dbCfg := f.cfg.Database
	dbCfg.Driver = f.driver
	dbCfg.Path = f.path
	dbCfg.Bootstrap = f.bootstrap

	db, err := database.NewDatabase(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
