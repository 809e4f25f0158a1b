package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoDown = errors.New("repo: connection refused")

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Pet
	seq  int

	failCreate bool
	failUpdate bool
	failDelete bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) put(p Pet) Pet {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("pet-%d", r.seq)
	}
	r.byID[p.ID] = p
	return p
}

func (r *testRepo) Create(ctx context.Context, owner string, f Fields, imageURL *string) (Pet, error) {
	if r.failCreate {
		return Pet{}, errRepoDown
	}
	p := Pet{OwnerUserID: owner, ImageURL: imageURL, CreatedAt: time.Now()}
	setFields(&p, f)
	return r.put(p), nil
}

func (r *testRepo) UpdateOwned(ctx context.Context, id, owner string, f Fields, imageURL *string) error {
	if r.failUpdate {
		return errRepoDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != owner {
		return ErrNotFound
	}
	setFields(&p, f)
	if imageURL != nil {
		p.ImageURL = imageURL
	}
	r.byID[id] = p
	return nil
}

func (r *testRepo) DeleteOwned(ctx context.Context, id, owner string) error {
	if r.failDelete {
		return errRepoDown
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != owner {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetOwned(ctx context.Context, id, owner string) (Pet, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p.OwnerUserID != owner {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string) ([]Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Pet
	for _, p := range r.byID {
		if p.OwnerUserID == owner {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *testRepo) ListImageURLs(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, p := range r.byID {
		if p.ImageURL != nil {
			out = append(out, *p.ImageURL)
		}
	}
	return out, nil
}

func setFields(p *Pet, f Fields) {
	p.Name, p.Species = f.Name, f.Species
	p.Breed, p.Color, p.DistinguishingFeatures, p.Bio = f.Breed, f.Color, f.DistinguishingFeatures, f.Bio
	p.BirthDate = f.BirthDate
}

// -------------------------
// Test asset store
// -------------------------

const testAssetBase = "https://cdn.test/pet-profiles/"

var errStorageDown = errors.New("storage: 503")

type testAssets struct {
	mu       sync.Mutex
	blobs    map[string]AssetInfo
	uploads  int
	removals []string
	cancels  int // operaciones que recibieron un ctx ya cancelado

	failUpload bool
	failRemove bool
}

func newTestAssets() *testAssets {
	return &testAssets{blobs: map[string]AssetInfo{}}
}

func (a *testAssets) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ctx.Err() != nil {
		a.cancels++
	}
	a.uploads++
	if a.failUpload {
		return errStorageDown
	}
	if _, ok := a.blobs[path]; ok {
		return errors.New("storage: already exists")
	}
	a.blobs[path] = AssetInfo{Path: path, Size: int64(len(data)), LastModified: time.Now()}
	return nil
}

func (a *testAssets) PublicURL(path string) string { return testAssetBase + path }

func (a *testAssets) PathFromURL(raw string) (string, error) {
	if !strings.HasPrefix(raw, testAssetBase) {
		return "", errors.New("foreign url")
	}
	return strings.TrimPrefix(raw, testAssetBase), nil
}

func (a *testAssets) Remove(ctx context.Context, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ctx.Err() != nil {
		a.cancels++
	}
	a.removals = append(a.removals, path)
	if a.failRemove {
		return errStorageDown
	}
	delete(a.blobs, path)
	return nil
}

func (a *testAssets) List(ctx context.Context, prefix string) ([]AssetInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []AssetInfo
	for k, v := range a.blobs {
		if strings.HasPrefix(k, prefix) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (a *testAssets) has(path string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.blobs[path]
	return ok
}

func (a *testAssets) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blobs)
}

// -------------------------
// Deterministic ids + observer
// -------------------------

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id%d", g.n)
}

type testObserver struct {
	mu       sync.Mutex
	uploads  []error
	removals map[string][]error
}

func (o *testObserver) ObserveUpload(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.uploads = append(o.uploads, err)
}

func (o *testObserver) ObserveRemoval(reason string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.removals == nil {
		o.removals = map[string][]error{}
	}
	o.removals[reason] = append(o.removals[reason], err)
}

func strPtr(s string) *string { return &s }

func pngImage(name string) *Image {
	return &Image{Filename: name, ContentType: "image/png", Data: []byte("png:" + name)}
}

// testOwners: directorio de perfiles en memoria.
type testOwners struct {
	byID map[string]Owner
	fail bool
}

func (o *testOwners) Owner(ctx context.Context, userID string) (Owner, error) {
	if o.fail {
		return Owner{}, errors.New("directory down")
	}
	v, ok := o.byID[userID]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return v, nil
}
