package users

import "context"

// Repository es el store de perfiles. GetBy* devuelven ErrNotFound si no hay fila.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)

	// Upsert crea o actualiza por ID (CreatedAt no cambia en update).
	// Un username de otro usuario => ErrUsernameTaken.
	Upsert(ctx context.Context, u User) (User, error)
}
