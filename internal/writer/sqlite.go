package writer

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/go-scripts/krankenhaus/pkg/common"
)

const (
	dropTableSQL   = `DROP TABLE IF EXISTS hospitals`
	createTableSQL = `CREATE TABLE hospitals (
	id            INTEGER PRIMARY KEY,
	hospital_name TEXT NOT NULL,
	phone         TEXT NOT NULL,
	email         TEXT NOT NULL,
	website       TEXT NOT NULL,
	anrede        TEXT NOT NULL
)`
	insertSQL = `INSERT INTO hospitals (id, hospital_name, phone, email, website, anrede) VALUES (?, ?, ?, ?, ?, ?)`
)

// SQLiteWriter replaces the hospitals table of a SQLite database
type SQLiteWriter struct {
	path string
}

// NewSQLiteWriter creates a SQLiteWriter for the database file at path
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{path: path}
}

// Name returns the database path
func (w *SQLiteWriter) Name() string {
	return w.path
}

// Write stores records in table order; ids start at 1
func (w *SQLiteWriter) Write(ctx context.Context, records []common.HospitalRecord) error {
	db, err := sql.Open("sqlite", w.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{dropTableSQL, createTableSQL} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare hospitals table: %w", err)
		}
	}

	insert, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insert.Close()

	for i, r := range records {
		if _, err := insert.ExecContext(ctx, i+1, r.Name, r.Phone, r.Email, r.Website, r.Anrede); err != nil {
			return fmt.Errorf("failed to insert %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
