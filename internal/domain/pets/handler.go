package pets

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"pet-social/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxFormBytes tope del body completo (imagen + campos). La regla de 5MB la aplica el Validator.
const maxFormBytes = 8 << 20

func RegisterRoutes(r chi.Router, svc *Service, v Validator) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, v))
		pr.Get("/", listPetsHandler(svc))

		pr.Route("/{petID}", func(ir chi.Router) {
			ir.Use(requirePetUUID)

			// Perfil público
			ir.Get("/", getPetHandler(svc))

			// Owner-only
			ir.Get("/edit", editPetHandler(svc))
			ir.Patch("/", updatePetHandler(svc, v))
			ir.Post("/update", updatePetHandler(svc, v))
			ir.Delete("/", deletePetHandler(svc))
			ir.Post("/delete", deletePetHandler(svc))
		})
	})
}

// petResponse representa el perfil de una mascota devuelto por la API.
type petResponse struct {
	ID                     string    `json:"id"`
	OwnerUserID            string    `json:"owner_user_id"`
	Name                   string    `json:"name"`
	Species                string    `json:"species"`
	Breed                  *string   `json:"breed"`
	BirthDate              *string   `json:"birth_date"` // YYYY-MM-DD
	Color                  *string   `json:"color"`
	DistinguishingFeatures *string   `json:"distinguishing_features"`
	Bio                    *string   `json:"bio"`
	ProfilePictureURL      *string   `json:"profile_picture_url"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type ownerResponse struct {
	ID                string  `json:"id"`
	Username          string  `json:"username"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// profileResponse es la vista pública con el flag de ownership del usuario actual.
type profileResponse struct {
	Pet     petResponse    `json:"pet"`
	Owner   *ownerResponse `json:"owner"`
	IsOwner bool           `json:"is_owner"`
}

type updateResponse struct {
	Success      bool   `json:"success"`
	UpdatedPetID string `json:"updated_pet_id"`
	Message      string `json:"message"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// errorResponse: Errors solo viene en 400 de validación (campo -> mensajes).
type errorResponse struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea el perfil de una mascota del usuario autenticado. Acepta multipart/form-data con `profile_picture` (image/*, < 5MB). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param name formData string true "Nombre (1-100)"
// @Param species formData string true "Especie (1-50)"
// @Param breed formData string false "Raza (<=100)"
// @Param birth_date formData string false "YYYY-MM-DD"
// @Param color formData string false "Color (<=100)"
// @Param distinguishing_features formData string false "Rasgos distintivos"
// @Param bio formData string false "Bio"
// @Param profile_picture formData file false "Imagen de perfil"
// @Success 201 {object} petResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /pets [post]
func createPetHandler(svc *Service, v Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		raw, err := readPetForm(w, r)
		if err != nil {
			writeFormError(w, err)
			return
		}

		in, err := v.ValidateCreate(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		p, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} petResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Perfil público de una mascota
// @Description Cualquiera puede ver el perfil. `owner` trae el perfil público del dueño (null si no tiene); `is_owner` indica si el usuario actual es el dueño.
// @Tags pets
// @Produce json
// @Param petID path string true "ID (UUID) de la mascota"
// @Success 200 {object} profileResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := middleware.UserID(r.Context())

		prof, err := svc.GetProfile(r.Context(), chi.URLParam(r, "petID"), viewer)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := profileResponse{Pet: toPetResponse(prof.Pet), IsOwner: prof.IsOwner}
		if o := prof.Owner; o != nil {
			resp.Owner = &ownerResponse{ID: o.ID, Username: o.Username, ProfilePictureURL: o.ProfilePictureURL}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// editPetHandler godoc
// @Summary Cargar mascota para editar
// @Description Solo el dueño. Para cualquier otro usuario la mascota "no existe" (404).
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID (UUID) de la mascota"
// @Success 200 {object} petResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /pets/{petID}/edit [get]
func editPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.GetForEdit(r.Context(), chi.URLParam(r, "petID"), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Reemplaza todos los campos del perfil. Si viene `profile_picture` se sube la nueva imagen y se borra la anterior; si no, la imagen actual no cambia. Para un usuario que no es dueño la mascota "no existe" (404).
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID (UUID) de la mascota"
// @Param name formData string true "Nombre (1-100)"
// @Param species formData string true "Especie (1-50)"
// @Param profile_picture formData file false "Nueva imagen de perfil"
// @Success 200 {object} updateResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service, v Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		petID := chi.URLParam(r, "petID")

		raw, err := readPetForm(w, r)
		if err != nil {
			writeFormError(w, err)
			return
		}

		in, err := v.ValidateUpdate(raw)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if err := svc.Update(r.Context(), petID, userID, in); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, updateResponse{
			Success:      true,
			UpdatedPetID: petID,
			Message:      "Pet profile updated successfully!",
		})
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota y su imagen. Si la mascota existe pero no es del usuario devuelve 403.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID (UUID) de la mascota"
// @Success 200 {object} deleteResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), userID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteResponse{Deleted: true})
	}
}

// requirePetUUID: un petID que no es UUID no matchea ninguna mascota.
func requirePetUUID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := uuid.Validate(chi.URLParam(r, "petID")); err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

var errUnsupportedMedia = errors.New("unsupported content type")

// readPetForm acepta multipart/form-data, x-www-form-urlencoded o JSON (sin archivo).
func readPetForm(w http.ResponseWriter, r *http.Request) (RawInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	raw := RawInput{Fields: map[string]string{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var body map[string]*string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return RawInput{}, err
		}
		for _, k := range FormFields {
			if v := body[k]; v != nil {
				raw.Fields[k] = *v
			}
		}
		return raw, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return RawInput{}, oversizedAttachment(err)
		}
		a, err := readAttachment(r)
		if err != nil {
			return RawInput{}, err
		}
		raw.Attachment = a

	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return RawInput{}, err
		}

	default:
		return RawInput{}, errUnsupportedMedia
	}

	for _, k := range FormFields {
		raw.Fields[k] = r.PostFormValue(k)
	}
	return raw, nil
}

// oversizedAttachment: en multipart el tope del body solo lo pasa el adjunto,
// así que se reporta como el error de tamaño del campo profile_picture.
func oversizedAttachment(err error) error {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return err
	}
	verr := newValidationError()
	verr.add(FieldProfilePicture, msgImageTooLarge)
	return verr
}

func readAttachment(r *http.Request) (*Attachment, error) {
	f, fh, err := r.FormFile(FieldProfilePicture)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func toPetResponse(p Pet) petResponse {
	var bd *string
	if p.BirthDate != nil {
		s := p.BirthDate.Format(time.DateOnly)
		bd = &s
	}
	return petResponse{
		ID:                     p.ID,
		OwnerUserID:            p.OwnerUserID,
		Name:                   p.Name,
		Species:                p.Species,
		Breed:                  p.Breed,
		BirthDate:              bd,
		Color:                  p.Color,
		DistinguishingFeatures: p.DistinguishingFeatures,
		Bio:                    p.Bio,
		ProfilePictureURL:      p.ImageURL,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func writeFormError(w http.ResponseWriter, err error) {
	var (
		verr     *ValidationError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		writeServiceError(w, err)
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, errUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	default:
		writeError(w, http.StatusBadRequest, "invalid form")
	}
}

// writeServiceError mapea la taxonomía de errores del dominio a HTTP.
// Upload/store: el detalle queda en el log, al cliente solo el tipo.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Please correct the errors in the form.",
			Errors: verr.Fields,
		})
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "pet not found")
	case errors.Is(err, ErrForbidden):
		writeError(w, http.StatusForbidden, "You do not have permission to delete this pet.")
	case errors.Is(err, ErrUpload):
		writeError(w, http.StatusInternalServerError, "Failed to upload profile picture.")
	case errors.Is(err, ErrStore):
		writeError(w, http.StatusInternalServerError, "Failed to save pet profile.")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: strings.TrimSpace(msg)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
