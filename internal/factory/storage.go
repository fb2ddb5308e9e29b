package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dreamcanvas/server/internal/config"
	storepkg "github.com/dreamcanvas/server/internal/store"
	storepg "github.com/dreamcanvas/server/internal/store/postgres"
	storelite "github.com/dreamcanvas/server/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver and ensures
// the dreams schema exists before the service starts taking requests.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("DREAMCANVAS_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := storepg.Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres bootstrap: %w", err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap completed")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := storelite.Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite bootstrap: %w", err)
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store bootstrap completed")
		return storelite.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
