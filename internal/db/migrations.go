package db

import (
	"database/sql"
	"fmt"
)

// lateColumns lists clothes columns that did not exist in early databases.
// Early releases tracked only name, image, and category; material and the
// purchase date arrived later, so existing files need them added on upgrade.
// ALTER TABLE ADD COLUMN is not idempotent in SQLite, so each column is
// checked against the table info before being added.
var lateColumns = []struct {
	name string
	ddl  string
}{
	{"material", `ALTER TABLE clothes ADD COLUMN material TEXT NOT NULL DEFAULT 'N/A'`},
	{"purchase_date", `ALTER TABLE clothes ADD COLUMN purchase_date DATETIME`},
}

// Migrate ensures the schema exists and upgrades databases created by
// earlier versions.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for _, col := range lateColumns {
		exists, err := columnExists(db, "clothes", col.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(col.ddl); err != nil {
			return fmt.Errorf("adding column %s: %w", col.name, err)
		}
	}

	return nil
}

// columnExists reports whether a table already has the given column.
func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("scanning table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
