package db

import (
	"database/sql"
	"fmt"
)

// Get returns the JSON document stored under key. The second return value
// is false when the key has never been written (or was deleted).
func Get(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Put writes the JSON document for key, replacing any previous value.
func Put(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Removing an absent key is not an error.
func Delete(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM store WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every key. Used by the factory-reset operation.
func Clear(db *sql.DB) error {
	if _, err := db.Exec("DELETE FROM store"); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}
