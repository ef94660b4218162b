package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"todoapi/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it hits go.mod.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			break
		}

		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

// InitTestDB opens a private in-memory sqlite store with the real
// migrations applied. MaxOpenConns(1) keeps the pool on the single
// connection that owns the in-memory database.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations")
	sqlite.RunMigrations(db, migrationsPath)

	return sqlite.NewDB(db)
}
