package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-social/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation es el SQLSTATE de Postgres para UNIQUE.
const uniqueViolation = "23505"

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, username, email, full_name, profile_picture_url, created_at`

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UsersRepo) Upsert(ctx context.Context, u users.User) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, email, full_name, profile_picture_url)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			profile_picture_url = EXCLUDED.profile_picture_url
		RETURNING `+userColumns,
		u.ID,
		u.Username,
		u.Email,
		toNullString(u.FullName),
		toNullString(u.ProfilePictureURL),
	)
	out, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return users.User{}, users.ErrUsernameTaken
		}
		return users.User{}, err
	}
	return out, nil
}

func scanUser(s scanner) (users.User, error) {
	var (
		u                 users.User
		fullName, picture sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &fullName, &picture, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.FullName = fromNullString(fullName)
	u.ProfilePictureURL = fromNullString(picture)
	return u, nil
}

var _ users.Repository = (*UsersRepo)(nil)
