package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-social/internal/platform/logger"
)

// Motivos de borrado de blobs (label de métricas y campo de log).
const (
	RemovalCreateCompensation = "create_compensation"
	RemovalUpdateCompensation = "update_compensation"
	RemovalReplaced           = "replaced"
	RemovalDeleted            = "deleted"
	RemovalSweep              = "sweep"
)

// AssetObserver recibe el resultado de cada operación sobre el asset store.
type AssetObserver interface {
	ObserveUpload(err error)
	ObserveRemoval(reason string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveUpload(error)          {}
func (nopObserver) ObserveRemoval(string, error) {}

type ServiceOptions struct {
	IDs     IDGenerator    // default UUIDGenerator
	Logger  logger.Logger  // default Nop
	Metrics AssetObserver  // default no-op
	Owners  OwnerDirectory // nil = el perfil público no trae owner
}

func (o ServiceOptions) withDefaults() ServiceOptions {
	if o.IDs == nil {
		o.IDs = UUIDGenerator{}
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	if o.Metrics == nil {
		o.Metrics = nopObserver{}
	}
	return o
}

// Service orquesta las mutaciones de mascotas sobre dos stores sin transacción
// común: el orden de las llamadas más los borrados compensatorios mantienen
// que toda imageURL apunte a un blob existente.
//
// No hay locking entre invocaciones: dos updates concurrentes del mismo owner
// compiten y gana la última escritura.
type Service struct {
	repo    Repository
	assets  AssetStore
	ids     IDGenerator
	log     logger.Logger
	metrics AssetObserver
	owners  OwnerDirectory
}

func NewService(repo Repository, assets AssetStore, opts ServiceOptions) *Service {
	opts = opts.withDefaults()
	return &Service{
		repo:    repo,
		assets:  assets,
		ids:     opts.IDs,
		log:     opts.Logger,
		metrics: opts.Metrics,
		owners:  opts.Owners,
	}
}

// Create: upload (opcional) -> insert -> [compensa: borrar blob].
func (s *Service) Create(ctx context.Context, ownerUserID string, in Input) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	log := s.logger(ctx).With(logger.Fields{"op": "pets.create", "owner_user_id": ownerUserID})

	var (
		assetPath string
		imageURL  *string
	)
	if in.Image != nil {
		// Desde el upload en adelante la invocación no se cancela a mitad de camino.
		ctx = context.WithoutCancel(ctx)

		assetPath = newAssetPath(ownerUserID, s.ids.NewID(), in.Image)
		if err := s.upload(ctx, assetPath, in.Image); err != nil {
			log.Error("pet image upload failed", logger.Fields{"path": assetPath, "error": err})
			return Pet{}, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		u := s.assets.PublicURL(assetPath)
		imageURL = &u
	}

	p, err := s.repo.Create(ctx, ownerUserID, in.Fields, imageURL)
	if err != nil {
		log.Error("pet insert failed", logger.Fields{"error": err})
		if assetPath != "" {
			_ = s.removeAsset(ctx, log, assetPath, RemovalCreateCompensation)
		}
		return Pet{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	log.Info("pet created", logger.Fields{"pet_id": p.ID, "has_image": imageURL != nil})
	return p, nil
}

// Update: fetch owned -> upload (opcional) -> borrar imagen vieja (best-effort)
// -> update owned -> [compensa: borrar blob nuevo].
//
// "No existe" y "no es tuyo" son el mismo ErrNotFound.
func (s *Service) Update(ctx context.Context, petID, ownerUserID string, in Input) error {
	petID = strings.TrimSpace(petID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return ErrInvalidInput
	}
	if petID == "" {
		return ErrNotFound
	}
	log := s.logger(ctx).With(logger.Fields{"op": "pets.update", "pet_id": petID, "owner_user_id": ownerUserID})

	current, err := s.repo.GetOwned(ctx, petID, ownerUserID)
	if err != nil {
		return storeErr(err)
	}
	oldPath := s.assetPathOf(log, current.ImageURL)

	var (
		newPath string
		newURL  *string
	)
	if in.Image != nil {
		ctx = context.WithoutCancel(ctx)

		newPath = newAssetPath(ownerUserID, s.ids.NewID(), in.Image)
		if err := s.upload(ctx, newPath, in.Image); err != nil {
			log.Error("pet image upload failed", logger.Fields{"path": newPath, "error": err})
			return fmt.Errorf("%w: %v", ErrUpload, err)
		}
		u := s.assets.PublicURL(newPath)
		newURL = &u

		// El record deja de referenciar la vieja; si falla, la limpia el sweeper.
		if oldPath != "" && oldPath != newPath {
			_ = s.removeAsset(ctx, log, oldPath, RemovalReplaced)
		}
	}

	// El filtro por owner en la escritura re-asegura ownership (sin gap check/use).
	if err := s.repo.UpdateOwned(ctx, petID, ownerUserID, in.Fields, newURL); err != nil {
		log.Error("pet update failed", logger.Fields{"error": err})
		if newPath != "" {
			_ = s.removeAsset(ctx, log, newPath, RemovalUpdateCompensation)
		}
		return storeErr(err)
	}

	log.Info("pet updated", logger.Fields{"image_replaced": newURL != nil})
	return nil
}

// Delete: fetch (sin filtro) -> check owner (403) -> delete owned -> borrar blob (best-effort).
//
// A diferencia de Update, acá un non-owner recibe ErrForbidden: la existencia
// se confirma antes del check de ownership.
func (s *Service) Delete(ctx context.Context, petID, ownerUserID string) error {
	petID = strings.TrimSpace(petID)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return ErrInvalidInput
	}
	if petID == "" {
		return ErrNotFound
	}
	log := s.logger(ctx).With(logger.Fields{"op": "pets.delete", "pet_id": petID, "owner_user_id": ownerUserID})

	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return storeErr(err)
	}
	if !isOwner(p.OwnerUserID, ownerUserID) {
		log.Warn("pet delete denied", nil)
		return ErrForbidden
	}

	if err := s.repo.DeleteOwned(ctx, petID, ownerUserID); err != nil {
		log.Error("pet delete failed", logger.Fields{"error": err})
		return storeErr(err)
	}

	// El record ya no existe: la limpieza del blob corre aunque se cancele el request.
	if path := s.assetPathOf(log, p.ImageURL); path != "" {
		_ = s.removeAsset(context.WithoutCancel(ctx), log, path, RemovalDeleted)
	}

	log.Info("pet deleted", nil)
	return nil
}

func (s *Service) upload(ctx context.Context, path string, img *Image) error {
	err := s.assets.Upload(ctx, path, img.Data, img.ContentType)
	s.metrics.ObserveUpload(err)
	return err
}

// removeAsset es best-effort: el error queda registrado (log + métrica) y se
// devuelve solo para que el caller lo descarte explícitamente.
func (s *Service) removeAsset(ctx context.Context, log logger.Logger, path, reason string) error {
	err := s.assets.Remove(ctx, path)
	s.metrics.ObserveRemoval(reason, err)
	if err != nil {
		log.Warn("pet image removal failed", logger.Fields{"path": path, "reason": reason, "error": err})
		return err
	}
	log.Debug("pet image removed", logger.Fields{"path": path, "reason": reason})
	return nil
}

// assetPathOf devuelve "" si no hay imagen o si la URL no se puede mapear a un path.
func (s *Service) assetPathOf(log logger.Logger, imageURL *string) string {
	if imageURL == nil || strings.TrimSpace(*imageURL) == "" {
		return ""
	}
	p, err := s.assets.PathFromURL(*imageURL)
	if err != nil {
		log.Warn("could not parse pet image url", logger.Fields{"image_url": *imageURL, "error": err})
		return ""
	}
	return p
}

func (s *Service) logger(ctx context.Context) logger.Logger {
	return logger.FromContext(ctx, s.log)
}

func isOwner(recordOwnerID, principalID string) bool {
	principalID = strings.TrimSpace(principalID)
	return principalID != "" && recordOwnerID == principalID
}

// storeErr conserva ErrNotFound y envuelve todo lo demás como ErrStore.
func storeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
