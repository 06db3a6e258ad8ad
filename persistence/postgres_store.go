package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/christopherhurt/AmbiguousGame/logging"
	"github.com/christopherhurt/AmbiguousGame/models"
)

// PostgresStore archives worlds in a PostgreSQL table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		seed BIGINT NOT NULL,
		cols INTEGER NOT NULL,
		rows INTEGER NOT NULL,
		tsize INTEGER NOT NULL,
		dsize INTEGER NOT NULL,
		layers JSONB NOT NULL,
		islands JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.ExecContext(ctx, schema)
	return err
}

// SaveWorld upserts a snapshot by name
func (ps *PostgresStore) SaveWorld(ctx context.Context, name string, world *models.WorldSnapshot) error {
	layersJSON, err := json.Marshal(world.Layers)
	if err != nil {
		return fmt.Errorf("failed to marshal world layers: %w", err)
	}
	islandsJSON, err := json.Marshal(world.Islands)
	if err != nil {
		return fmt.Errorf("failed to marshal world islands: %w", err)
	}

	query := `
	INSERT INTO worlds (name, seed, cols, rows, tsize, dsize, layers, islands)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name)
	DO UPDATE SET
		seed = $2, cols = $3, rows = $4, tsize = $5, dsize = $6,
		layers = $7, islands = $8,
		updated_at = NOW()
	`

	// BIGINT is signed; the seed round-trips through its bit pattern
	_, err = ps.db.ExecContext(ctx, query,
		name, int64(world.Seed), world.Cols, world.Rows, world.TSize, world.DSize,
		string(layersJSON), string(islandsJSON))
	if err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}

	return nil
}

// LoadWorld reads a snapshot by name
func (ps *PostgresStore) LoadWorld(ctx context.Context, name string) (*models.WorldSnapshot, error) {
	query := `SELECT seed, cols, rows, tsize, dsize, layers, islands FROM worlds WHERE name = $1`

	var world models.WorldSnapshot
	var seed int64
	var layersJSON, islandsJSON string

	err := ps.db.QueryRowContext(ctx, query, name).Scan(
		&seed, &world.Cols, &world.Rows, &world.TSize, &world.DSize, &layersJSON, &islandsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load world: %w", err)
	}
	world.Seed = uint64(seed)

	if err := json.Unmarshal([]byte(layersJSON), &world.Layers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world layers: %w", err)
	}
	if err := json.Unmarshal([]byte(islandsJSON), &world.Islands); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world islands: %w", err)
	}

	return &world, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	logging.Info("Closing database connection...")
	return ps.db.Close()
}
