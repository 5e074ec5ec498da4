package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Library
	}

	Database struct {
		Driver       string
		Host         string
		Port         int
		Name         string
		User         string
		Password     string
		SSLMode      string
		Path         string // SQLite file, used when Driver is "sqlite"
		Bootstrap    bool   // Create tables and the overdue view if missing
		MaxOpenConns int
		LogSQL       bool
	}
	Library struct {
		ID uint // Library branch recorded on new books and loans
	}
)

// PostgresDSN renders the key/value connection string understood by pgx.
func (d Database) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_name", "library_db")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_path", DefaultDatabasePath)
	v.SetDefault("db_bootstrap", false)
	v.SetDefault("db_max_open_conns", 1) // the console loop is single-threaded
	v.SetDefault("db_log_sql", false)
	v.SetDefault("library_id", DefaultLibraryID)

	return &Config{
		Database: Database{
			Driver:       v.GetString("DB_DRIVER"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetInt("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			Path:         v.GetString("DB_PATH"),
			Bootstrap:    v.GetBool("DB_BOOTSTRAP"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			LogSQL:       v.GetBool("DB_LOG_SQL"),
		},
		Library: Library{
			ID: v.GetUint("LIBRARY_ID"),
		},
	}
}
