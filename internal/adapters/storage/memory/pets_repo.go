package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-social/internal/domain/pets"

	"github.com/google/uuid"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
	now  func() time.Time
}

func NewPetRepo() pets.Repository {
	return newPetRepo(time.Now)
}

func newPetRepo(now func() time.Time) *petRepo {
	return &petRepo{
		byID: make(map[string]pets.Pet),
		now:  now,
	}
}

func (r *petRepo) Create(ctx context.Context, ownerUserID string, f pets.Fields, imageURL *string) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	p := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		ImageURL:    cloneStr(imageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyFields(&p, f)
	r.byID[p.ID] = p
	return p, nil
}

func (r *petRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, f pets.Fields, imageURL *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.ErrNotFound
	}
	applyFields(&p, f)
	if imageURL != nil {
		p.ImageURL = cloneStr(imageURL)
	}
	p.UpdatedAt = r.now().UTC()
	r.byID[id] = p
	return nil
}

func (r *petRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetOwned(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return pets.Pet{}, err
	}
	if p.OwnerUserID != ownerUserID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *petRepo) ListImageURLs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byID))
	for _, p := range r.byID {
		if p.ImageURL != nil && *p.ImageURL != "" {
			out = append(out, *p.ImageURL)
		}
	}
	sort.Strings(out)
	return out, nil
}

func applyFields(p *pets.Pet, f pets.Fields) {
	p.Name = f.Name
	p.Species = f.Species
	p.Breed = cloneStr(f.Breed)
	p.Color = cloneStr(f.Color)
	p.DistinguishingFeatures = cloneStr(f.DistinguishingFeatures)
	p.Bio = cloneStr(f.Bio)
	if f.BirthDate != nil {
		t := *f.BirthDate
		p.BirthDate = &t
	} else {
		p.BirthDate = nil
	}
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
