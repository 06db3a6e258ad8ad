package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/christopherhurt/AmbiguousGame/models"
)

// FileStore keeps one zstd-compressed JSON document per world
type FileStore struct {
	dir   string
	mutex sync.Mutex

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewFileStore creates dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive dir: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &FileStore{dir: dir, encoder: enc, decoder: dec}, nil
}

func (fs *FileStore) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid world name %q", name)
	}
	return filepath.Join(fs.dir, name+".json.zst"), nil
}

// SaveWorld writes the snapshot, replacing any earlier one of that name
func (fs *FileStore) SaveWorld(ctx context.Context, name string, world *models.WorldSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := fs.path(name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(world)
	if err != nil {
		return fmt.Errorf("failed to marshal world: %w", err)
	}

	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	compressed := fs.encoder.EncodeAll(data, nil)

	// Write then rename so readers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("failed to write world %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write world %s: %w", name, err)
	}
	return nil
}

// LoadWorld reads a snapshot back
func (fs *FileStore) LoadWorld(ctx context.Context, name string) (*models.WorldSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := fs.path(name)
	if err != nil {
		return nil, err
	}
	compressed, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	fs.mutex.Lock()
	data, err := fs.decoder.DecodeAll(compressed, nil)
	fs.mutex.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to decompress world %s: %w", name, err)
	}

	var world models.WorldSnapshot
	if err := json.Unmarshal(data, &world); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world %s: %w", name, err)
	}
	return &world, nil
}

// Close releases the codecs
func (fs *FileStore) Close() error {
	fs.decoder.Close()
	return fs.encoder.Close()
}
