package rbs

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"
	"golang.org/x/mod/semver"
)

// CacheFileName is the signature-cache blob, probed next to the executable
// first and in the per-user cache directory second.
const CacheFileName = "rbs_cache.bin"

// checksumKey is the fixed highwayhash key for the cache payload checksum.
var checksumKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Cache is the persisted signature catalog. Validity requires both version
// strings to match the running tool; the comparison goes through
// versionsMatch, so it is not byte-exact ("0.3.0" and "v0.3.0" match). Any
// mismatch forces regeneration from the harvester.
type Cache struct {
	Version    string
	RBSVersion string
	Timestamp  time.Time
	Records    []Record
}

// Valid reports whether the cache matches the running tool and upstream
// signature versions.
func (c *Cache) Valid(toolVersion, rbsVersion string) bool {
	return versionsMatch(c.Version, toolVersion) && versionsMatch(c.RBSVersion, rbsVersion)
}

// versionsMatch compares two version strings, canonicalizing through semver
// when both parse so "0.3.0" and "v0.3.0" agree; otherwise exact equality.
func versionsMatch(a, b string) bool {
	va, vb := "v"+strings.TrimPrefix(a, "v"), "v"+strings.TrimPrefix(b, "v")
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb) == 0
	}
	return a == b
}

// envelope is the on-disk layout: the gob-encoded cache body plus a
// highwayhash checksum that rejects torn or corrupt files.
type envelope struct {
	Payload  []byte
	Checksum uint64
}

// Encode serializes the cache into the envelope form.
func (c *Cache) Encode() ([]byte, error) {
	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(c); err != nil {
		return nil, fmt.Errorf("encoding cache body: %w", err)
	}
	sum, err := checksum(body.Bytes())
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{Payload: body.Bytes(), Checksum: sum}); err != nil {
		return nil, fmt.Errorf("encoding cache envelope: %w", err)
	}
	return out.Bytes(), nil
}

// DecodeCache parses an envelope, verifying the checksum before decoding the
// body.
func DecodeCache(data []byte) (*Cache, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding cache envelope: %w", err)
	}
	sum, err := checksum(env.Payload)
	if err != nil {
		return nil, err
	}
	if sum != env.Checksum {
		return nil, fmt.Errorf("cache checksum mismatch: file is corrupt or truncated")
	}
	var c Cache
	if err := gob.NewDecoder(bytes.NewReader(env.Payload)).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding cache body: %w", err)
	}
	return &c, nil
}

func checksum(data []byte) (uint64, error) {
	h, err := highwayhash.New64(checksumKey)
	if err != nil {
		return 0, fmt.Errorf("initializing checksum: %w", err)
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// CacheStore reads and writes the cache blob. Reads probe the bundled
// location (next to the executable) before the per-user cache directory;
// writes always target the user directory and go through a temp file plus
// rename so concurrent regeneration never leaves a partial file.
type CacheStore struct {
	fs      afs.Service
	bundled string
	userDir string
}

// CacheStoreOption adjusts cache locations, mainly for tests and for the
// config file's cache-dir override.
type CacheStoreOption func(*CacheStore)

func WithUserCacheDir(dir string) CacheStoreOption {
	return func(s *CacheStore) { s.userDir = dir }
}

func WithBundledPath(path string) CacheStoreOption {
	return func(s *CacheStore) { s.bundled = path }
}

func NewCacheStore(opts ...CacheStoreOption) *CacheStore {
	s := &CacheStore{fs: afs.New()}
	if exe, err := os.Executable(); err == nil {
		s.bundled = filepath.Join(filepath.Dir(exe), CacheFileName)
	}
	if base, err := os.UserCacheDir(); err == nil {
		s.userDir = filepath.Join(base, "methodray")
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserPath is where regenerated caches land.
func (s *CacheStore) UserPath() string {
	return filepath.Join(s.userDir, CacheFileName)
}

// Load returns the first readable cache blob in probe order.
func (s *CacheStore) Load(ctx context.Context) (*Cache, error) {
	var firstErr error
	for _, path := range []string{s.bundled, s.UserPath()} {
		if path == "" {
			continue
		}
		if ok, _ := s.fs.Exists(ctx, path); !ok {
			continue
		}
		data, err := s.fs.DownloadWithURL(ctx, path)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("reading cache %s: %w", path, err)
			}
			continue
		}
		c, err := DecodeCache(data)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("decoding cache %s: %w", path, err)
			}
			continue
		}
		return c, nil
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, os.ErrNotExist
}

// Save atomically persists the cache to the user directory.
func (s *CacheStore) Save(ctx context.Context, c *Cache) error {
	if s.userDir == "" {
		return fmt.Errorf("no user cache directory available")
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp-%d", s.UserPath(), os.Getpid())
	if err := s.fs.Upload(ctx, tmp, 0o644, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing cache temp file: %w", err)
	}
	if err := s.fs.Move(ctx, tmp, s.UserPath()); err != nil {
		return fmt.Errorf("committing cache file: %w", err)
	}
	return nil
}

// Clear deletes the per-user cache; a missing file is not an error.
func (s *CacheStore) Clear(ctx context.Context) error {
	path := s.UserPath()
	if ok, _ := s.fs.Exists(ctx, path); !ok {
		return nil
	}
	if err := s.fs.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting cache %s: %w", path, err)
	}
	return nil
}
