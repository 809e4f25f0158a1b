package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// GetProfile es la vista pública: cualquiera puede verla, viewerUserID puede ser "".
func (s *Service) GetProfile(ctx context.Context, petID, viewerUserID string) (Profile, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return Profile{}, storeErr(err)
	}
	prof := Profile{Pet: p, IsOwner: isOwner(p.OwnerUserID, viewerUserID)}

	if s.owners != nil {
		o, err := s.owners.Owner(ctx, p.OwnerUserID)
		switch {
		case err == nil:
			prof.Owner = &o
		case errors.Is(err, ErrNotFound):
			// dueño sin perfil: la mascota se muestra igual
		default:
			return Profile{}, fmt.Errorf("%w: owner lookup: %v", ErrStore, err)
		}
	}
	return prof, nil
}

// GetForEdit trae la mascota solo si es del owner; si no, ErrNotFound.
func (s *Service) GetForEdit(ctx context.Context, petID, ownerUserID string) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetOwned(ctx, strings.TrimSpace(petID), ownerUserID)
	if err != nil {
		return Pet{}, storeErr(err)
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}
