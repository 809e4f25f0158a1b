// Package memory implementa pets.ListableAssetStore en memoria (dev y tests).
package memory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"pet-social/internal/adapters/assets/publicurl"
	"pet-social/internal/domain/pets"
)

var ErrExists = errors.New("asset already exists")

type entry struct {
	data        []byte
	contentType string
	modified    time.Time
}

type Store struct {
	mu   sync.RWMutex
	objs map[string]entry
	urls publicurl.Builder
	now  func() time.Time
}

// New: publicBase es la URL bajo la que el router sirve Store (p.ej. http://localhost:8080/assets).
func New(publicBase string) (*Store, error) {
	urls, err := publicurl.New(publicBase)
	if err != nil {
		return nil, err
	}
	return &Store{objs: map[string]entry{}, urls: urls, now: time.Now}, nil
}

// Upload es create-only.
func (s *Store) Upload(_ context.Context, path string, data []byte, contentType string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty asset path")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objs[path]; ok {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.objs[path] = entry{data: cp, contentType: contentType, modified: s.now().UTC()}
	return nil
}

func (s *Store) PublicURL(path string) string { return s.urls.URL(path) }

func (s *Store) PathFromURL(raw string) (string, error) { return s.urls.Path(raw) }

// Remove de un path inexistente no es error.
func (s *Store) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objs, path)
	return nil
}

func (s *Store) List(_ context.Context, prefix string) ([]pets.AssetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]pets.AssetInfo, 0, len(s.objs))
	for k, v := range s.objs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, pets.AssetInfo{Path: k, Size: int64(len(v.data)), LastModified: v.modified})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Has y Len son para tests.
func (s *Store) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objs[path]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}

// ServeHTTP sirve el blob en r.URL.Path (montar con http.StripPrefix).
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.mu.RLock()
	e, ok := s.objs[strings.TrimPrefix(r.URL.Path, "/")]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if e.contentType != "" {
		w.Header().Set("Content-Type", e.contentType)
	}
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(e.data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(e.data)
	}
}

var _ pets.ListableAssetStore = (*Store)(nil)
