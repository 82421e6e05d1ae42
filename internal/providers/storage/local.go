package storage

import (
	"context"
	"crypto/rand"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type Config struct {
	Dir     string
	BaseURL string
}

// LocalProvider writes uploads to a directory on disk. Names are ULIDs with
// the original extension preserved, so listings sort by upload time.
type LocalProvider struct {
	cfg Config
}

func NewLocal(cfg Config) *LocalProvider {
	return &LocalProvider{cfg: cfg}
}

func (p *LocalProvider) Save(ctx context.Context, originalName string, r io.Reader) (Stored, error) {
	if err := os.MkdirAll(p.cfg.Dir, 0o755); err != nil {
		return Stored{}, err
	}

	name := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	if ext := sanitizeExt(originalName); ext != "" {
		name += ext
	}

	f, err := os.Create(filepath.Join(p.cfg.Dir, name))
	if err != nil {
		return Stored{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Stored{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Stored{}, err
	}

	return Stored{
		Ref: name,
		URL: strings.TrimRight(p.cfg.BaseURL, "/") + "/" + name,
	}, nil
}

func (p *LocalProvider) Remove(ctx context.Context, ref string) error {
	// Refs are bare generated names; anything path-like is rejected rather
	// than resolved.
	if ref == "" || ref != path.Base(ref) || strings.HasPrefix(ref, ".") {
		return ErrInvalidRef
	}
	if err := os.Remove(filepath.Join(p.cfg.Dir, ref)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || ext == "." || len(ext) > 10 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
