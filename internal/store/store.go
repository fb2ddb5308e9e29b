package store

import (
	"context"

	"github.com/dreamcanvas/server/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Dreams() Dreams

	// HealthPing reports backing-store reachability.
	HealthPing(ctx context.Context) error
}

// Dreams persists Dream records scoped by owner. Reads that match no
// owned row return model.ErrNotFound; mutating failures surface as errors.
type Dreams interface {
	// List returns the user's dreams, newest first.
	List(ctx context.Context, userID string) ([]*model.Dream, error)

	// Get returns the dream only when it exists and belongs to userID.
	Get(ctx context.Context, id int64, userID string) (*model.Dream, error)

	// Create assigns id and created_at and returns the persisted record.
	Create(ctx context.Context, d *model.Dream) (*model.Dream, error)

	// SetFavorite flips the favorite flag for an owned dream. Idempotent.
	SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error)
}
