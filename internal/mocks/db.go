package mocks

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver registration
)

// NewLazyDB returns a *sql.DB handle that is never connected.
// database/sql dials lazily, so the handle satisfies non-nil constructor
// checks while any actual query would fail. Tests that pair it with the
// fake stores exercise the InTx code paths directly and never touch it.
func NewLazyDB() *sql.DB {
	db, err := sql.Open("pgx", "postgres://localhost:5432/unreachable?sslmode=disable")
	if err != nil {
		panic(err)
	}
	return db
}
