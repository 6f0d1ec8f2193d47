// Package migrations embeds SQL migration files and provides a function to apply them.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// FS contains the embedded SQL migration files.
//
//go:embed *.sql
var FS embed.FS

// Dialect is the goose dialect of the schema.
const Dialect = "sqlite3"

var ErrUnknownCommand = errors.New("unknown migration command")

// gooseMu guards the package-level goose configuration.
var gooseMu sync.Mutex

// Commands lists the goose commands accepted by Command.
var Commands = []string{"up", "down", "status", "version"}

// Run applies all pending migrations to the given database.
func Run(db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(Dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// Command runs one goose command against db. Progress goes to logger.
func Command(db *sql.DB, command string, logger goose.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	goose.SetLogger(logger)

	if err := goose.SetDialect(Dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		err = goose.Version(db, ".")
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}

	return nil
}
