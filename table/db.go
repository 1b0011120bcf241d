package table

import (
	"database/sql"
	"fmt"
	"io"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// DB stores any number of named tables in a single SQLite file.
type DB struct {
	db *sql.DB
}

// NewDB opens or creates the database in file.
func NewDB(file string) (*DB, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS entry (tbl TEXT NOT NULL, id INTEGER NOT NULL, field TEXT NOT NULL, value TEXT NOT NULL, PRIMARY KEY(tbl, id, field))"); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db: db,
	}, nil
}

// ImportCSV replaces table name with the contents of the CSV in r.
func (db *DB) ImportCSV(name string, r io.Reader) (err error) {
	t, err := ReadCSV(r)
	if err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM entry WHERE tbl = ?", name); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO entry (tbl, id, field, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range t.IDs() {
		for _, field := range t.Fields() {
			if field == idField || field == "" {
				continue
			}
			var value string
			if value, err = t.Lookup(id, field); err != nil {
				return fmt.Errorf("table: %s row %d: %w", name, id, err)
			}
			if _, err = stmt.Exec(name, id, field, value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Table returns a Reader for table name.
func (db *DB) Table(name string) Reader {
	return &dbTable{
		db:   db.db,
		name: name,
	}
}

// Close closes the database.
func (db *DB) Close() error {
	return db.db.Close()
}

type dbTable struct {
	db   *sql.DB
	name string
}

func (t *dbTable) Lookup(id int, field string) (string, error) {
	var value string
	switch err := t.db.QueryRow("SELECT value FROM entry WHERE tbl = ? AND id = ? AND field = ?", t.name, id, field).Scan(&value); err {
	case sql.ErrNoRows:
		return "", ErrNotFound
	case nil:
		return value, nil
	default:
		return "", err
	}
}
