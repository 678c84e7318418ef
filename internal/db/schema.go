package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS clothes (
    id                   INTEGER PRIMARY KEY,
    user_id              INTEGER NOT NULL REFERENCES users(id),
    name                 TEXT NOT NULL,
    image                TEXT,
    photo                BLOB,
    photo_mime           TEXT,
    material             TEXT NOT NULL DEFAULT 'N/A',
    category             TEXT NOT NULL DEFAULT 'N/A',
    color                TEXT,
    brand                TEXT,
    purchase_date        DATETIME,
    times_worn           INTEGER NOT NULL DEFAULT 0 CHECK (times_worn >= 0),
    sustainability_score INTEGER NOT NULL CHECK (sustainability_score BETWEEN 0 AND 100),
    created_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at           DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_clothes_user ON clothes(user_id);

CREATE TABLE IF NOT EXISTS wear_log (
    id          INTEGER PRIMARY KEY,
    clothing_id INTEGER NOT NULL REFERENCES clothes(id) ON DELETE CASCADE,
    worn_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    score_after INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wear_log_clothing ON wear_log(clothing_id);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
