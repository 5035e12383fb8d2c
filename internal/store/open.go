package store

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/JonMunkholm/opsconsole/internal/config"
)

// Open returns the store described by cfg: a migrated PgStore when a
// database URL is set, otherwise a MemoryStore with the sample dataset.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	if cfg.URL == "" {
		slog.Info("no database configured, serving the sample dataset")
		return NewMemoryStore(), nil
	}

	pg, err := Connect(ctx, cfg.URL, PoolOptions{
		MaxConns:        cfg.MaxConns,
		MinConns:        cfg.MinConns,
		MaxConnLifetime: cfg.MaxConnLifetime,
		MaxConnIdleTime: cfg.MaxConnIdleTime,
	})
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pg, nil
}
