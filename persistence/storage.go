package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/christopherhurt/AmbiguousGame/config"
	"github.com/christopherhurt/AmbiguousGame/models"
)

// ErrWorldNotFound is returned by LoadWorld for unknown names
var ErrWorldNotFound = errors.New("world not found")

// Archive stores exported world snapshots
type Archive interface {
	SaveWorld(ctx context.Context, name string, world *models.WorldSnapshot) error
	LoadWorld(ctx context.Context, name string) (*models.WorldSnapshot, error)
	Close() error
}

// Open returns the archive selected by cfg, or nil when archiving is off
func Open(ctx context.Context, cfg config.ArchiveConfig) (Archive, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "file":
		return NewFileStore(cfg.Path)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres archive needs archive.dsn or DATABASE_URL")
		}
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
