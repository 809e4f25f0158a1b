package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/logger"

	"github.com/google/uuid"
)

// PetLister es lo único que el perfil necesita del record store de mascotas.
type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetLister
	log  logger.Logger
}

func NewService(repo Repository, petLister PetLister, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, pets: petLister, log: log}
}

// GetProfile busca por ID si identifier es un UUID y por username si no.
// viewerUserID puede ser "" (anónimo).
func (s *Service) GetProfile(ctx context.Context, identifier, viewerUserID string) (Profile, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return Profile{}, ErrNotFound
	}

	var (
		u   User
		err error
	)
	if uuid.Validate(identifier) == nil {
		u, err = s.repo.GetByID(ctx, identifier)
	} else {
		u, err = s.repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		return Profile{}, storeErr(err)
	}

	items, err := s.pets.ListByOwner(ctx, u.ID)
	if err != nil {
		logger.FromContext(ctx, s.log).Error("list profile pets failed", logger.Fields{"user_id": u.ID, "error": err})
		return Profile{}, fmt.Errorf("%w: list pets: %v", ErrStore, err)
	}

	viewerUserID = strings.TrimSpace(viewerUserID)
	return Profile{
		User:         u,
		IsOwnProfile: viewerUserID != "" && viewerUserID == u.ID,
		Pets:         items,
	}, nil
}

// Owner implementa pets.OwnerDirectory.
func (s *Service) Owner(ctx context.Context, userID string) (pets.Owner, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pets.Owner{}, pets.ErrNotFound
	}
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return pets.Owner{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Owner{}, err
	}
	return pets.Owner{ID: u.ID, Username: u.Username, ProfilePictureURL: u.ProfilePictureURL}, nil
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Upsert valida con las mismas reglas del registro y guarda el perfil.
func (s *Service) Upsert(ctx context.Context, u User) (User, error) {
	u.ID = strings.TrimSpace(u.ID)
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.TrimSpace(u.Email)

	if err := validateUser(u); err != nil {
		return User{}, err
	}

	out, err := s.repo.Upsert(ctx, u)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return User{}, ErrUsernameTaken
		}
		return User{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	logger.FromContext(ctx, s.log).Info("user profile saved", logger.Fields{"user_id": out.ID, "username": out.Username})
	return out, nil
}

func validateUser(u User) error {
	var problems []string
	if u.ID == "" {
		problems = append(problems, "id is required")
	}
	switch n := len(u.Username); {
	case n < 3:
		problems = append(problems, "Username must be at least 3 characters long.")
	case n > 50:
		problems = append(problems, "Username must be 50 characters or less.")
	}
	if u.Username != "" && !usernamePattern.MatchString(u.Username) {
		problems = append(problems, "Username can only contain letters, numbers, and underscores.")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		problems = append(problems, "Invalid email address.")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, " "))
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

var _ pets.OwnerDirectory = (*Service)(nil)
