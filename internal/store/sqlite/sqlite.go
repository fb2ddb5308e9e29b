package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode. ":memory:" opens an in-memory database.
func Open(path string) (*sql.DB, error) {
	var dsn string
	if path == ":memory:" {
		dsn = "file::memory:?cache=shared&_pragma=foreign_keys(ON)"
	} else {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// In-memory databases vanish when their only connection closes.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a SQLite store backed by an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Dreams() store.Dreams { return &dreams{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap creates the dreams table if it does not exist.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS dreams (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id     TEXT NOT NULL,
            title       TEXT NOT NULL,
            description TEXT NOT NULL,
            image_url   TEXT NOT NULL,
            style       TEXT NOT NULL,
            mood        TEXT NOT NULL,
            elements    TEXT NOT NULL DEFAULT '[]',
            is_favorite INTEGER NOT NULL DEFAULT 0,
            created_at  TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_dreams_user_created
            ON dreams (user_id, created_at DESC);
    `)
	return err
}

type dreams struct{ db *sql.DB }

// List orders by id: created_at is RFC3339Nano text whose lexicographic
// order is not chronological (trailing zeros are trimmed), while ids
// follow insertion order.
func (r *dreams) List(ctx context.Context, userID string) ([]*model.Dream, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, title, description, image_url, style, mood, elements, is_favorite, created_at
        FROM dreams WHERE user_id=? ORDER BY id DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.Dream
	for rows.Next() {
		d, err := scanDream(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}

func (r *dreams) Get(ctx context.Context, id int64, userID string) (*model.Dream, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, title, description, image_url, style, mood, elements, is_favorite, created_at
        FROM dreams WHERE id=? AND user_id=?
    `, id, userID)
	d, err := scanDream(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *dreams) Create(ctx context.Context, d *model.Dream) (*model.Dream, error) {
	elements := d.Elements
	if elements == nil {
		elements = []string{}
	}
	elemJSON, err := json.Marshal(elements)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO dreams (user_id, title, description, image_url, style, mood, elements, is_favorite, created_at)
        VALUES (?,?,?,?,?,?,?,?,?)
    `, d.UserID, d.Title, d.Description, d.ImageURL, d.Style, d.Mood,
		string(elemJSON), d.IsFavorite, now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	out := *d
	out.ID = id
	out.Elements = elements
	out.CreatedAt = now
	return &out, nil
}

func (r *dreams) SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE dreams SET is_favorite=? WHERE id=? AND user_id=?
    `, fav, id, userID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, model.ErrNotFound
	}
	return r.Get(ctx, id, userID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDream(row rowScanner) (*model.Dream, error) {
	var d model.Dream
	var elemJSON, createdAt string
	if err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.ImageURL,
		&d.Style, &d.Mood, &elemJSON, &d.IsFavorite, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(elemJSON), &d.Elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	if d.Elements == nil {
		d.Elements = []string{}
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	d.CreatedAt = ts.UTC()
	return &d, nil
}
