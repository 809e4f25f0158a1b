package pets

import "time"

// Pet representa el perfil de una mascota. Cada mascota pertenece a un único usuario.
type Pet struct {
	ID          string // lo asigna el record store al insertar
	OwnerUserID string // inmutable

	Name    string
	Species string

	// Opcionales: nil = ausente (nunca guardamos "").
	Breed                  *string
	Color                  *string
	DistinguishingFeatures *string
	Bio                    *string

	BirthDate *time.Time // fecha calendario, medianoche UTC

	// ImageURL apunta a un blob del asset store. nil = sin imagen.
	ImageURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields son los campos editables del perfil. No incluye owner ni imagen:
// el owner sale siempre de la identidad y la imagen la resuelve el Service.
type Fields struct {
	Name    string
	Species string

	Breed                  *string
	Color                  *string
	DistinguishingFeatures *string
	Bio                    *string

	BirthDate *time.Time
}

// Image es un adjunto ya validado (tipo image/* y < MaxImageBytes).
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Input es la salida de la etapa de validación.
// Image == nil: en create = sin imagen; en update = no tocar la imagen actual.
type Input struct {
	Fields
	Image *Image
}

// Owner son los datos públicos del dueño que se muestran junto a la mascota.
type Owner struct {
	ID                string
	Username          string
	ProfilePictureURL *string
}

// Profile es la vista pública de una mascota.
// Owner es nil si no hay directorio de usuarios o el usuario no tiene perfil.
type Profile struct {
	Pet     Pet
	Owner   *Owner
	IsOwner bool
}
