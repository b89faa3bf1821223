package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Disk persists documents as one file per key under a base directory,
// mirroring the scope/user/collection key shape as a directory tree.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

func NewDisk(basePath string) (*Disk, error) {
	if basePath == "" {
		return nil, errors.New("store: data directory required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure data directory: %w", err)
	}
	return &Disk{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (s *Disk) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Disk) Save(_ context.Context, key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *Disk) Close() error {
	return nil
}

// keyToPath maps scope/user/collection onto nested directories with the
// collection as the file name, with a .json suffix so the tree stays
// readable with ordinary tools.
func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json")
	return strings.Join(pk.Path, "/") + "/" + name
}
