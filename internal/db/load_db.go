package db

import (
	"database/sql"
	"embed"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ziggoon/tinyDEM/internal/config"
)

//go:embed users.sql sessions.sql
var schemaFS embed.FS

var schemaFiles = []string{"users.sql", "sessions.sql"}

// maxOpenConns bounds concurrent storage access so request volume
// cannot exhaust the underlying engine.
const maxOpenConns = 10

func Load() *sql.DB {
	db, err := sql.Open(config.DBDriver(), config.DBDSN())
	if err != nil {
		log.Fatal(err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	if err := db.Ping(); err != nil {
		log.Fatal("Cannot connect to DB:", err)
	}
	if err := CreateTables(db); err != nil {
		log.Fatal("Cannot create tables:", err)
	}
	return db
}

// CreateTables is idempotent and safe to run on every startup.
func CreateTables(db *sql.DB) error {
	for _, file := range schemaFiles {
		query, err := schemaFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file, err)
		}
	}
	return nil
}
