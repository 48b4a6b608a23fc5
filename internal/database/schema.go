package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Tables lists the tables the schema creates, parents first
var Tables = []string{"lists", "todos"}

// schemas holds the idempotent DDL for the two tables, per dialect.
// Ids come from auto-increment columns, which never hand out a deleted id again.
var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS lists (
			id serial PRIMARY KEY,
			name text
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id serial PRIMARY KEY,
			list_id integer REFERENCES lists(id),
			name text,
			completed boolean DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_list_id ON todos(list_id)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS lists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			list_id INTEGER REFERENCES lists(id),
			name TEXT,
			completed BOOLEAN DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_list_id ON todos(list_id)`,
	},
	// InnoDB indexes the foreign key column on its own
	DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS lists (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INT AUTO_INCREMENT PRIMARY KEY,
			list_id INT,
			name TEXT,
			completed BOOLEAN DEFAULT FALSE,
			FOREIGN KEY (list_id) REFERENCES lists(id)
		)`,
	},
}

// SchemaStatements returns the DDL for a dialect name as reported by GORM
func SchemaStatements(dialect string) ([]string, error) {
	statements, ok := schemas[dialect]
	if !ok {
		return nil, fmt.Errorf("no schema for dialect %q", dialect)
	}
	return statements, nil
}

// EnsureSchema creates the lists and todos tables when they do not exist yet
func EnsureSchema(db *gorm.DB) error {
	statements, err := SchemaStatements(db.Dialector.Name())
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
