package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-social/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/profiles/{identifier}", getProfileHandler(svc))
}

type userResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             *string   `json:"email,omitempty"` // solo en el perfil propio
	FullName          *string   `json:"full_name"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
}

type petSummary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Species           string  `json:"species"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

type profileResponse struct {
	Profile      userResponse `json:"profile"`
	IsOwnProfile bool         `json:"is_own_profile"`
	Pets         []petSummary `json:"pets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// getProfileHandler godoc
// @Summary Perfil público de un usuario
// @Description `identifier` es el ID (UUID) o el username. Devuelve el perfil y sus mascotas; `is_own_profile` indica si es el usuario actual (solo entonces viene `email`).
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param identifier path string true "ID (UUID) o username"
// @Success 200 {object} profileResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /profiles/{identifier} [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, _ := middleware.UserID(r.Context())

		prof, err := svc.GetProfile(r.Context(), chi.URLParam(r, "identifier"), viewer)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{Error: "User profile not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		u := prof.User
		resp := profileResponse{
			Profile: userResponse{
				ID:                u.ID,
				Username:          u.Username,
				FullName:          u.FullName,
				ProfilePictureURL: u.ProfilePictureURL,
				CreatedAt:         u.CreatedAt,
			},
			IsOwnProfile: prof.IsOwnProfile,
			Pets:         make([]petSummary, 0, len(prof.Pets)),
		}
		if prof.IsOwnProfile {
			resp.Profile.Email = &u.Email
		}
		for _, p := range prof.Pets {
			resp.Pets = append(resp.Pets, petSummary{ID: p.ID, Name: p.Name, Species: p.Species, ProfilePictureURL: p.ImageURL})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
