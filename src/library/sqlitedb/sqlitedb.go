// Package sqlitedb stores a catalog in a SQLite database.
package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"vidbox/src/library"
)

const schema = `
CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS video_tags (
	video_id TEXT NOT NULL REFERENCES videos(id),
	position INTEGER NOT NULL,
	tag TEXT NOT NULL,
	PRIMARY KEY (video_id, position)
);
`

// A DB is a library that is backed by a SQLite database.
type DB struct {
	db       *sql.DB
	filename string
}

var _ library.Library = &DB{}

// Open opens or creates the database at the specified location and makes
// sure the schema exists.
func Open(filename string) (*DB, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db: db, filename: filename}, nil
}

// migrate is idempotent.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (db *DB) Close() error {
	return db.db.Close()
}

// Videos implements the library.Library interface.
func (db *DB) Videos(ctx context.Context) ([]library.Video, error) {
	rows, err := db.db.QueryContext(ctx, `
		SELECT v.id, v.title, t.tag
		FROM videos v
		LEFT JOIN video_tags t ON t.video_id = v.id
		ORDER BY v.position ASC, t.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []library.Video
	for rows.Next() {
		var id, title string
		var tag sql.NullString
		if err := rows.Scan(&id, &title, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		if len(videos) == 0 || videos[len(videos)-1].ID != id {
			videos = append(videos, library.Video{ID: id, Title: title})
		}
		if tag.Valid {
			last := &videos[len(videos)-1]
			last.Tags = append(last.Tags, tag.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}
	return videos, nil
}

// Import replaces the contents of the database with the videos of the
// specified library. It returns the number of videos written.
func (db *DB) Import(ctx context.Context, lib library.Library) (int, error) {
	videos, err := lib.Videos(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM video_tags`); err != nil {
		return 0, fmt.Errorf("clearing tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM videos`); err != nil {
		return 0, fmt.Errorf("clearing videos: %w", err)
	}
	for i, video := range videos {
		if _, err := tx.ExecContext(ctx, `INSERT INTO videos (id, title, position) VALUES (?, ?, ?)`, video.ID, video.Title, i); err != nil {
			return 0, fmt.Errorf("inserting video %q: %w", video.ID, err)
		}
		for j, tag := range video.Tags {
			if _, err := tx.ExecContext(ctx, `INSERT INTO video_tags (video_id, position, tag) VALUES (?, ?, ?)`, video.ID, j, tag); err != nil {
				return 0, fmt.Errorf("inserting tag %q of %q: %w", tag, video.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	log.WithField("db", db.filename).Debugf("Imported %d videos", len(videos))
	return len(videos), nil
}

func (db *DB) String() string {
	return fmt.Sprintf("sqlitedb.DB{%s}", db.filename)
}
