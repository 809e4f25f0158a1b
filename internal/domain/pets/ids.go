package pets

import "github.com/google/uuid"

// IDGenerator genera los tokens aleatorios de los paths de imágenes.
// Se inyecta en el Service para poder usar generadores deterministas en tests.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator usa UUIDv4 (crypto/rand). No hay retry por colisión.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
