package sqlite

import (
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ApplyMigrations runs database migrations
func ApplyMigrations(dbPath string) {
	m, err := migrate.New(
		"file://pkg/db/migrations/sqlite",
		"sqlite3://"+dbPath,
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	log.Println("[DB] Migrations applied")
}

func RollbackLastMigration(dbPath string) {
	m, err := migrate.New(
		"file://pkg/db/migrations/sqlite",
		"sqlite3://"+dbPath,
	)
	if err != nil {
		log.Fatal("Failed to initialize migrations:", err)
	}

	if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Failed to rollback migration:", err)
	}

	log.Println("[DB] Rolled back last migration")
}
