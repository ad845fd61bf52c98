package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func MigrateUp(db *sql.DB) error {
	return withGoose(func() error {
		if err := goose.Up(db, "migrations"); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	})
}

func MigrateDown(db *sql.DB) error {
	return withGoose(func() error {
		if err := goose.Reset(db, "migrations"); err != nil {
			return fmt.Errorf("goose reset: %w", err)
		}
		return nil
	})
}

func withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return fn()
}
