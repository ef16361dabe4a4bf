// Package local implements the file-backed store used for workout
// schedules. Schedules deliberately do not live in MongoDB with the rest
// of the entities: they are kept in a simple string-keyed blob store on
// the server's disk, one JSON file per key, mirroring the localStorage
// persistence the feature was designed around. The trade-offs (no
// cross-instance sync, last-writer-wins) are accepted.
package local

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KV is a durable string-keyed get/set/remove store. Each key maps to
// one file under the data directory.
type KV struct {
	dir string
}

// NewKV creates the data directory if needed and returns a store rooted
// at it.
func NewKV(dir string) (*KV, error) {
	if dir == "" {
		return nil, errors.New("local store directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create local store directory: %w", err)
	}
	return &KV{dir: dir}, nil
}

// Get returns the blob stored under key. found is false when the key has
// never been set (or was removed).
func (kv *KV) Get(key string) (value []byte, found bool, err error) {
	data, err := os.ReadFile(kv.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes the blob under key, replacing any previous value. The write
// goes through a temp file and rename so a crash mid-write leaves either
// the old value or the new one, never a torn file.
func (kv *KV) Set(key string, value []byte) error {
	path := kv.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Remove deletes the key. Removing an absent key is not an error.
func (kv *KV) Remove(key string) error {
	err := os.Remove(kv.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (kv *KV) path(key string) string {
	// Keys are internally generated (prefix + hex user id), but guard
	// against separators anyway so a key can never escape the directory.
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(key)
	return filepath.Join(kv.dir, safe+".json")
}
