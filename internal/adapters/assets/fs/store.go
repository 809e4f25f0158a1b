// Package fs implementa pets.ListableAssetStore sobre el filesystem local.
// Pensado para dev single-node: el router sirve el directorio en /assets.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pet-social/internal/adapters/assets/publicurl"
	"pet-social/internal/domain/pets"
)

var (
	ErrExists      = errors.New("asset already exists")
	ErrInvalidPath = errors.New("invalid asset path")
)

type Store struct {
	root string
	urls publicurl.Builder
}

func New(root, publicBase string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		root = "./data/assets"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	urls, err := publicurl.New(publicBase)
	if err != nil {
		return nil, err
	}
	return &Store{root: root, urls: urls}, nil
}

// fileFor no deja que un path salga de root (absolutos, "..", etc).
func (s *Store) fileFor(path string) (string, error) {
	rel := filepath.FromSlash(path)
	if strings.TrimSpace(path) == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return filepath.Join(s.root, rel), nil
}

// Upload es create-only (O_EXCL). Si la escritura falla no deja archivo parcial.
func (s *Store) Upload(ctx context.Context, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.fileFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, iofs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return err
	}
	return nil
}

func (s *Store) PublicURL(path string) string { return s.urls.URL(path) }

func (s *Store) PathFromURL(raw string) (string, error) { return s.urls.Path(raw) }

// Remove de un path inexistente no es error.
func (s *Store) Remove(_ context.Context, path string) error {
	full, err := s.fileFor(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]pets.AssetInfo, error) {
	var out []pets.AssetInfo
	err := filepath.WalkDir(s.root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, pets.AssetInfo{Path: key, Size: fi.Size(), LastModified: fi.ModTime().UTC()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// ServeHTTP sirve un archivo bajo root (montar con http.StripPrefix).
// Solo archivos regulares: los directorios no se listan (expondrían las keys de otros usuarios).
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		http.NotFound(w, r)
		return
	}
	full, err := s.fileFor(key)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(full)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "max-age=3600")
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

var _ pets.ListableAssetStore = (*Store)(nil)
