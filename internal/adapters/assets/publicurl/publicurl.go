// Package publicurl mapea paths del bucket a URLs públicas y de vuelta.
package publicurl

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	ErrInvalidBase = errors.New("invalid public base url")
	ErrForeignURL  = errors.New("url is not under the public base")
)

// Builder es un valor inmutable; el zero value no es usable.
type Builder struct {
	base     string // sin "/" final
	basePath string // path de base, sin "/" final
}

// New acepta solo URLs absolutas http(s), p.ej. https://cdn.example.com/storage/v1/object/public/pet-profiles.
func New(base string) (Builder, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	u, err := url.Parse(base)
	if err != nil {
		return Builder{}, fmt.Errorf("%w: %v", ErrInvalidBase, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Builder{}, fmt.Errorf("%w: %q", ErrInvalidBase, base)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return Builder{}, fmt.Errorf("%w: query or fragment not allowed", ErrInvalidBase)
	}
	return Builder{base: base, basePath: strings.TrimRight(u.Path, "/")}, nil
}

func (b Builder) Base() string { return b.base }

// URL escapa cada segmento del path por separado.
func (b Builder) URL(p string) string {
	segs := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return b.base + "/" + strings.Join(segs, "/")
}

// Path es la inversa de URL. Compara solo el path (no el host), así una URL
// guardada antes de mover el bucket detrás de un CDN sigue resolviendo.
func (b Builder) Path(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrForeignURL, err)
	}
	prefix := b.basePath + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("%w: %q", ErrForeignURL, raw)
	}
	rest := strings.TrimPrefix(u.Path, prefix)
	if rest == "" || path.Clean(rest) != rest || strings.HasPrefix(rest, "../") {
		return "", fmt.Errorf("%w: %q", ErrForeignURL, raw)
	}
	return rest, nil
}
