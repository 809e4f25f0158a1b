package pets

import "context"

// Repository es el record store. Las operaciones *Owned filtran por (id, owner)
// en la misma escritura; si no hay fila que matchee devuelven ErrNotFound.
// Cualquier otro error se trata como falla del store.
type Repository interface {
	GetByID(ctx context.Context, id string) (Pet, error)
	GetOwned(ctx context.Context, id, ownerUserID string) (Pet, error)

	// Create inserta y devuelve la fila con ID y CreatedAt asignados por el store.
	Create(ctx context.Context, ownerUserID string, f Fields, imageURL *string) (Pet, error)

	// UpdateOwned escribe todos los campos. imageURL == nil deja la imagen como está.
	UpdateOwned(ctx context.Context, id, ownerUserID string, f Fields, imageURL *string) error
	DeleteOwned(ctx context.Context, id, ownerUserID string) error

	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// ListImageURLs devuelve todas las image URLs no nulas (para el sweeper).
	ListImageURLs(ctx context.Context) ([]string, error)
}

// OwnerDirectory resuelve el dueño de una mascota (lo implementa el módulo de usuarios;
// el port vive acá para no importar users desde pets).
// Devuelve ErrNotFound si el usuario no tiene perfil.
type OwnerDirectory interface {
	Owner(ctx context.Context, userID string) (Owner, error)
}
