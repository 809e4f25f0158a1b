package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-social/internal/domain/pets"

	"github.com/google/uuid"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, user_id,
	name, species, breed,
	birth_date, color, distinguishing_features, bio,
	profile_picture_url,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, ownerUserID string, f pets.Fields, imageURL *string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			user_id,
			name, species, breed,
			birth_date, color, distinguishing_features, bio,
			profile_picture_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+petColumns,
		ownerUserID,
		f.Name,
		f.Species,
		toNullString(f.Breed),
		toNullDate(f.BirthDate),
		toNullString(f.Color),
		toNullString(f.DistinguishingFeatures),
		toNullString(f.Bio),
		toNullString(imageURL),
	)
	return scanPet(row)
}

// UpdateOwned: COALESCE deja profile_picture_url igual cuando imageURL es nil.
func (r *PetsRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, f pets.Fields, imageURL *string) error {
	if !validID(id) {
		return pets.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			species = $4,
			breed = $5,
			birth_date = $6,
			color = $7,
			distinguishing_features = $8,
			bio = $9,
			profile_picture_url = COALESCE($10, profile_picture_url),
			updated_at = $11
		WHERE id = $1 AND user_id = $2
	`,
		id,
		ownerUserID,
		f.Name,
		f.Species,
		toNullString(f.Breed),
		toNullDate(f.BirthDate),
		toNullString(f.Color),
		toNullString(f.DistinguishingFeatures),
		toNullString(f.Bio),
		toNullString(imageURL),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) error {
	if !validID(id) {
		return pets.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1 AND user_id = $2`, id, ownerUserID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id))
}

func (r *PetsRepo) GetOwned(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return scanPet(r.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = $1 AND user_id = $2`, id, ownerUserID))
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) ListImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT profile_picture_url FROM pets
		WHERE profile_picture_url IS NOT NULL AND profile_picture_url <> ''
		ORDER BY profile_picture_url
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                           pets.Pet
		breed, color, feats, bio, u sql.NullString
		bd                          sql.NullTime
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Species,
		&breed,
		&bd,
		&color,
		&feats,
		&bio,
		&u,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.Breed = fromNullString(breed)
	p.Color = fromNullString(color)
	p.DistinguishingFeatures = fromNullString(feats)
	p.Bio = fromNullString(bio)
	p.ImageURL = fromNullString(u)
	if bd.Valid {
		// ojo: birth_date es date, pgx lo mapea a time.Time midnight UTC
		t := bd.Time
		p.BirthDate = &t
	}
	return p, nil
}

// validID: la columna es UUID; un id que no parsea no matchea ninguna fila.
func validID(id string) bool {
	return uuid.Validate(strings.TrimSpace(id)) == nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ pets.Repository = (*PetsRepo)(nil)
