// Package sqlitestore persists administrators, content entities and
// newsletter subscribers in a single SQLite database file.
package sqlitestore

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/hotelvalmont/cms-server/admins"
	"github.com/hotelvalmont/cms-server/content"
	"github.com/hotelvalmont/cms-server/newsletter"
)

const schema = `
CREATE TABLE IF NOT EXISTS admins (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	display_name  TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS content_entities (
	type       TEXT NOT NULL,
	id         TEXT NOT NULL,
	slug       TEXT NOT NULL DEFAULT '',
	fields     TEXT NOT NULL DEFAULT '{}',
	position   INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (type, id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_content_type_slug
	ON content_entities (type, slug) WHERE slug != '';

CREATE TABLE IF NOT EXISTS newsletter_subscribers (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	subscribed_at TEXT NOT NULL
);
`

// Store owns the database handle and hands out the per-domain repositories.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "[sqlitestore.Open] open database")
	}

	// modernc.org/sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "[sqlitestore.Open] apply schema")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Admins() admins.Repo {
	return &adminRepo{db: s.db}
}

func (s *Store) Content() content.Repo {
	return &contentRepo{db: s.db}
}

func (s *Store) Newsletter() newsletter.Repo {
	return &newsletterRepo{db: s.db}
}
