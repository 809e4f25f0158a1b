package memory

import (
	"context"
	"sync"
	"time"

	"pet-social/internal/domain/users"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byUsername map[string]string // username -> id
	now        func() time.Time
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byUsername: make(map[string]string),
		now:        time.Now,
	}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *userRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byUsername[u.Username]; ok && id != u.ID {
		return users.User{}, users.ErrUsernameTaken
	}
	if prev, ok := r.byID[u.ID]; ok {
		u.CreatedAt = prev.CreatedAt
		delete(r.byUsername, prev.Username)
	} else {
		u.CreatedAt = r.now().UTC()
	}
	u = cloneUser(u)
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return cloneUser(u), nil
}

func cloneUser(u users.User) users.User {
	u.FullName = cloneStr(u.FullName)
	u.ProfilePictureURL = cloneStr(u.ProfilePictureURL)
	return u
}
