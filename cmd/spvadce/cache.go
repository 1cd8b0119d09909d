package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// summarySchemaVersion bumps whenever Summary's shape changes,
// invalidating any cache written by an older binary.
const summarySchemaVersion uint16 = 1

// Summary is what gets cached per input digest: enough to report a
// repeat run's outcome without re-running the pass pipeline, not the
// transformed module itself (that would make the cache as large as
// the corpus it accelerates).
type Summary struct {
	Schema          uint16
	Changed         bool
	DiagnosticCount int
	OutputBytes     int
}

// runCache is a content-addressed disk cache of run summaries, keyed
// by the SHA-256 of the input module bytes plus a config fingerprint
// (the driver passes the target environment name).
// Modeled on vovakirdan-surge's internal/driver disk cache.
type runCache struct {
	dir string
}

func openRunCache() (*runCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, "spvadce")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &runCache{dir: dir}, nil
}

func digestKey(input []byte, configFingerprint string) [32]byte {
	h := sha256.New()
	h.Write(input)
	h.Write([]byte(configFingerprint))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *runCache) path(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

func (c *runCache) Get(key [32]byte) (Summary, bool, error) {
	if c == nil {
		return Summary{}, false, nil
	}
	f, err := os.Open(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Summary{}, false, nil
		}
		return Summary{}, false, err
	}
	defer f.Close()

	var s Summary
	if err := msgpack.NewDecoder(f).Decode(&s); err != nil {
		return Summary{}, false, err
	}
	if s.Schema != summarySchemaVersion {
		return Summary{}, false, nil
	}
	return s, true, nil
}

func (c *runCache) Put(key [32]byte, s Summary) error {
	if c == nil {
		return nil
	}
	s.Schema = summarySchemaVersion
	p := c.path(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&s); err != nil {
		f.Close()
		os.Remove(tmpName)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}
