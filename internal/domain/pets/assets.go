package pets

import (
	"context"
	"path"
	"strings"
	"time"
)

// AssetStore es el object store donde viven las imágenes.
type AssetStore interface {
	// Upload es create-only: falla si el path ya existe.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// PublicURL es pura, sin modo de falla.
	PublicURL(path string) string
	// PathFromURL es la inversa de PublicURL.
	PathFromURL(rawURL string) (string, error)
	Remove(ctx context.Context, path string) error
}

// AssetInfo describe un blob listado.
type AssetInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
}

type AssetLister interface {
	List(ctx context.Context, prefix string) ([]AssetInfo, error)
}

// ListableAssetStore es lo que necesita el sweeper.
type ListableAssetStore interface {
	AssetStore
	AssetLister
}

const imagesDir = "pet_images"

// newAssetPath arma {ownerId}/pet_images/{id}.{ext}.
func newAssetPath(ownerUserID, id string, img *Image) string {
	return ownerUserID + "/" + imagesDir + "/" + id + "." + imageExtension(img)
}

// imageExtension toma la extensión del nombre de archivo; si no hay, usa el
// subtipo MIME (image/png -> png).
func imageExtension(img *Image) string {
	name := path.Base(strings.ReplaceAll(img.Filename, "\\", "/"))
	if i := strings.LastIndex(name, "."); i >= 0 {
		if ext := sanitizeExt(name[i+1:]); ext != "" {
			return ext
		}
	}

	_, sub, ok := strings.Cut(img.ContentType, "/")
	if ok {
		sub, _, _ = strings.Cut(sub, ";")
		sub, _, _ = strings.Cut(sub, "+") // image/svg+xml -> svg
		if ext := sanitizeExt(sub); ext != "" {
			return ext
		}
	}
	return "bin"
}

func sanitizeExt(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}
