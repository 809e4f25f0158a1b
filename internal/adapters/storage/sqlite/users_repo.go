package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-social/internal/domain/users"

	sqlite3 "modernc.org/sqlite/lib"
)

type UsersRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db, now: time.Now}
}

const userColumns = `id, username, email, full_name, profile_picture_url, created_at`

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// Upsert: ON CONFLICT(id) actualiza; el UNIQUE de username lo resuelve sqlite.
func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			username = excluded.username,
			email = excluded.email,
			full_name = excluded.full_name,
			profile_picture_url = excluded.profile_picture_url
	`,
		u.ID,
		u.Username,
		u.Email,
		nullString(u.FullName),
		nullString(u.ProfilePictureURL),
		formatTime(r.now()),
	)
	if err != nil {
		if isConstraintError(err) {
			return users.User{}, users.ErrUsernameTaken
		}
		return users.User{}, err
	}
	return r.GetByID(ctx, u.ID)
}

// isConstraintError: con id resuelto por ON CONFLICT, la única constraint que
// queda por violar es el UNIQUE de username.
func isConstraintError(err error) bool {
	var coder interface{ Code() int }
	if !errors.As(err, &coder) {
		return false
	}
	return coder.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

func scanUser(s scanner) (users.User, error) {
	var (
		u        users.User
		fullName sql.NullString
		picture  sql.NullString
		created  string
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &fullName, &picture, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return users.User{}, fmt.Errorf("decode created_at: %w", err)
	}
	u.CreatedAt = t
	u.FullName = fromNull(fullName)
	u.ProfilePictureURL = fromNull(picture)
	return u, nil
}

var _ users.Repository = (*UsersRepo)(nil)
