package users

import (
	"time"

	"pet-social/internal/domain/pets"
)

// User es el perfil público de un usuario. Las filas las crea el registro del
// identity provider; acá solo se leen (Upsert existe para seeding en dev).
type User struct {
	ID                string
	Username          string
	Email             string
	FullName          *string
	ProfilePictureURL *string
	CreatedAt         time.Time
}

// Profile es la página pública de un usuario con sus mascotas.
type Profile struct {
	User         User
	IsOwnProfile bool
	Pets         []pets.Pet
}
