package shader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrCacheMiss is returned when no usable binary is stored for a program.
var ErrCacheMiss = errors.New("shader: binary cache miss")

// BinaryMeta is stored next to each cached binary.
type BinaryMeta struct {
	Format   uint32 `yaml:"format"`
	Length   int    `yaml:"length"`
	Checksum string `yaml:"checksum"`
}

// BinaryCache keeps linked program binaries on disk, one raw blob per
// program name plus a YAML sidecar with its GPU binary format.
// Deleting either file invalidates the entry.
type BinaryCache struct {
	dir string
}

// NewBinaryCache returns a cache rooted at dir. The directory is created
// on the first Store.
func NewBinaryCache(dir string) *BinaryCache {
	return &BinaryCache{dir: dir}
}

// Dir returns the cache directory.
func (c *BinaryCache) Dir() string { return c.dir }

func (c *BinaryCache) blobPath(name string) string {
	return filepath.Join(c.dir, name)
}

func (c *BinaryCache) metaPath(name string) string {
	return filepath.Join(c.dir, name+".meta.yaml")
}

// Load returns the stored binary for name if its checksum matches.
// Missing, stale or truncated entries yield ErrCacheMiss.
func (c *BinaryCache) Load(name, checksum string) (BinaryMeta, []byte, error) {
	var meta BinaryMeta

	raw, err := os.ReadFile(c.metaPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return meta, nil, ErrCacheMiss
		}
		return meta, nil, fmt.Errorf("read cache meta: %w", err)
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, nil, fmt.Errorf("%w: corrupt meta: %v", ErrCacheMiss, err)
	}
	if meta.Checksum != checksum {
		return meta, nil, fmt.Errorf("%w: source changed", ErrCacheMiss)
	}

	blob, err := os.ReadFile(c.blobPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return meta, nil, ErrCacheMiss
		}
		return meta, nil, fmt.Errorf("read cache blob: %w", err)
	}
	if len(blob) != meta.Length || len(blob) == 0 {
		return meta, nil, fmt.Errorf("%w: blob is %d bytes, meta says %d", ErrCacheMiss, len(blob), meta.Length)
	}
	return meta, blob, nil
}

// Store writes the binary and its sidecar.
func (c *BinaryCache) Store(name string, format uint32, blob []byte, checksum string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.blobPath(name), blob, 0644); err != nil {
		return fmt.Errorf("write cache blob: %w", err)
	}

	meta := BinaryMeta{Format: format, Length: len(blob), Checksum: checksum}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal cache meta: %w", err)
	}
	if err := os.WriteFile(c.metaPath(name), data, 0644); err != nil {
		return fmt.Errorf("write cache meta: %w", err)
	}
	return nil
}

// Invalidate removes the entry for name. Removing a missing entry is not an error.
func (c *BinaryCache) Invalidate(name string) error {
	for _, p := range []string{c.blobPath(name), c.metaPath(name)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Checksum identifies a set of shader sources.
func Checksum(sources ...string) string {
	h := sha256.New()
	for _, s := range sources {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
