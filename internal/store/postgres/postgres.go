package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Dreams() store.Dreams { return &dreams{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap creates the dreams table if it does not exist.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS dreams (
            id          BIGSERIAL PRIMARY KEY,
            user_id     TEXT NOT NULL,
            title       TEXT NOT NULL,
            description TEXT NOT NULL,
            image_url   TEXT NOT NULL,
            style       TEXT NOT NULL,
            mood        TEXT NOT NULL,
            elements    TEXT NOT NULL DEFAULT '[]',
            is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
            created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
        );
        CREATE INDEX IF NOT EXISTS idx_dreams_user_created
            ON dreams (user_id, created_at DESC);
    `)
	return err
}

type dreams struct{ db *sql.DB }

func (r *dreams) List(ctx context.Context, userID string) ([]*model.Dream, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, title, description, image_url, style, mood, elements, is_favorite, created_at
        FROM dreams WHERE user_id=$1 ORDER BY created_at DESC, id DESC
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
        FROM dreams WHERE id=$1 AND user_id=$2
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

	var id int64
	var created time.Time
	row := r.db.QueryRowContext(ctx, `
        INSERT INTO dreams (user_id, title, description, image_url, style, mood, elements, is_favorite)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at
    `, d.UserID, d.Title, d.Description, d.ImageURL, d.Style, d.Mood, string(elemJSON), d.IsFavorite)
	if err := row.Scan(&id, &created); err != nil {
		return nil, err
	}

	out := *d
	out.ID = id
	out.Elements = elements
	out.CreatedAt = created.UTC()
	return &out, nil
}

func (r *dreams) SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE dreams SET is_favorite=$1 WHERE id=$2 AND user_id=$3
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
	var elemJSON string
	if err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.ImageURL,
		&d.Style, &d.Mood, &elemJSON, &d.IsFavorite, &d.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(elemJSON), &d.Elements); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	if d.Elements == nil {
		d.Elements = []string{}
	}
	d.CreatedAt = d.CreatedAt.UTC()
	return &d, nil
}
