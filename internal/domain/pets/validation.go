package pets

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Nombres de campo del formulario de mascota.
const (
	FieldName                   = "name"
	FieldSpecies                = "species"
	FieldBreed                  = "breed"
	FieldBirthDate              = "birth_date"
	FieldColor                  = "color"
	FieldDistinguishingFeatures = "distinguishing_features"
	FieldBio                    = "bio"
	FieldProfilePicture         = "profile_picture"
)

// FormFields lista los campos de texto que lee el handler.
var FormFields = []string{
	FieldName,
	FieldSpecies,
	FieldBreed,
	FieldBirthDate,
	FieldColor,
	FieldDistinguishingFeatures,
	FieldBio,
}

// MaxImageBytes es el límite exclusivo del adjunto (5 MiB).
const MaxImageBytes = 5 * 1024 * 1024

const msgImageTooLarge = "Max 5MB upload size."

const (
	maxNameLen    = 100
	maxSpeciesLen = 50
	maxBreedLen   = 100
	maxColorLen   = 100
)

// Attachment es el archivo tal como llega del request, sin validar.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RawInput son los valores crudos enviados por el cliente.
type RawInput struct {
	Fields     map[string]string
	Attachment *Attachment
}

// Validator convierte RawInput en Input.
// Todas las reglas se evalúan; los errores se acumulan por campo.
type Validator struct {
	// RequireImageOnCreate exige profile_picture al crear.
	RequireImageOnCreate bool
}

func (v Validator) ValidateCreate(raw RawInput) (Input, error) {
	return v.validate(raw, v.RequireImageOnCreate)
}

// ValidateUpdate: la imagen es siempre opcional (ausente = dejar la actual).
func (v Validator) ValidateUpdate(raw RawInput) (Input, error) {
	return v.validate(raw, false)
}

func (v Validator) validate(raw RawInput, requireImage bool) (Input, error) {
	verr := newValidationError()
	get := func(field string) string {
		return strings.TrimSpace(raw.Fields[field])
	}

	var in Input
	in.Name = requiredString(verr, FieldName, get(FieldName), maxNameLen, "Pet name")
	in.Species = requiredString(verr, FieldSpecies, get(FieldSpecies), maxSpeciesLen, "Species")
	in.Breed = optionalString(verr, FieldBreed, get(FieldBreed), maxBreedLen, "Breed")
	in.Color = optionalString(verr, FieldColor, get(FieldColor), maxColorLen, "Color")
	in.DistinguishingFeatures = optionalString(verr, FieldDistinguishingFeatures, get(FieldDistinguishingFeatures), 0, "")
	in.Bio = optionalString(verr, FieldBio, get(FieldBio), 0, "")

	if s := get(FieldBirthDate); s != "" {
		d, err := ParseDate(s)
		if err != nil {
			verr.add(FieldBirthDate, "Invalid date format.")
		} else {
			in.BirthDate = &d
		}
	}

	in.Image = validateImage(verr, raw.Attachment, requireImage)

	if !verr.empty() {
		return Input{}, verr
	}
	return in, nil
}

func requiredString(verr *ValidationError, field, value string, max int, label string) string {
	if value == "" {
		verr.add(field, label+" is required.")
		return ""
	}
	if utf8.RuneCountInString(value) > max {
		verr.add(field, fmt.Sprintf("%s must be at most %d characters.", label, max))
	}
	return value
}

// optionalString: "" => nil. max <= 0 significa sin límite.
func optionalString(verr *ValidationError, field, value string, max int, label string) *string {
	if value == "" {
		return nil
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		verr.add(field, fmt.Sprintf("%s must be at most %d characters.", label, max))
	}
	return &value
}

func validateImage(verr *ValidationError, a *Attachment, required bool) *Image {
	// Un archivo vacío cuenta como "sin adjunto" (input file sin seleccionar).
	if a == nil || len(a.Data) == 0 {
		if required {
			verr.add(FieldProfilePicture, "Profile picture is required.")
		}
		return nil
	}

	ct := strings.ToLower(strings.TrimSpace(a.ContentType))
	if !strings.HasPrefix(ct, "image/") {
		verr.add(FieldProfilePicture, "File must be an image.")
	}
	if len(a.Data) >= MaxImageBytes {
		verr.add(FieldProfilePicture, msgImageTooLarge)
	}

	return &Image{
		Filename:    strings.TrimSpace(a.Filename),
		ContentType: ct,
		Data:        a.Data,
	}
}

// ParseDate acepta YYYY-MM-DD o RFC3339 (se queda con la fecha calendario).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
