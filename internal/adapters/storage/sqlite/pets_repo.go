package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-social/internal/domain/pets"

	"github.com/google/uuid"
)

// PetsRepo guarda timestamps como TEXT de ancho fijo (ver timeLayout) y birth_date como YYYY-MM-DD.
type PetsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db, now: time.Now}
}

const petColumns = `id, user_id, name, species, breed, birth_date, color,
	distinguishing_features, bio, profile_picture_url, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, ownerUserID string, f pets.Fields, imageURL *string) (pets.Pet, error) {
	id := uuid.NewString()
	now := formatTime(r.now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		ownerUserID,
		f.Name,
		f.Species,
		nullString(f.Breed),
		nullDate(f.BirthDate),
		nullString(f.Color),
		nullString(f.DistinguishingFeatures),
		nullString(f.Bio),
		nullString(imageURL),
		now,
		now,
	)
	if err != nil {
		return pets.Pet{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PetsRepo) UpdateOwned(ctx context.Context, id, ownerUserID string, f pets.Fields, imageURL *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET
			name = ?,
			species = ?,
			breed = ?,
			birth_date = ?,
			color = ?,
			distinguishing_features = ?,
			bio = ?,
			profile_picture_url = COALESCE(?, profile_picture_url),
			updated_at = ?
		WHERE id = ? AND user_id = ?
	`,
		f.Name,
		f.Species,
		nullString(f.Breed),
		nullDate(f.BirthDate),
		nullString(f.Color),
		nullString(f.DistinguishingFeatures),
		nullString(f.Bio),
		nullString(imageURL),
		formatTime(r.now()),
		strings.TrimSpace(id),
		ownerUserID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) DeleteOwned(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ? AND user_id = ?`, strings.TrimSpace(id), ownerUserID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, strings.TrimSpace(id)))
}

func (r *PetsRepo) GetOwned(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	return scanPet(r.db.QueryRowContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE id = ? AND user_id = ?`, strings.TrimSpace(id), ownerUserID))
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+petColumns+` FROM pets WHERE user_id = ? ORDER BY created_at ASC, id ASC`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
		ORDER BY profile_picture_url`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
		p                               pets.Pet
		breed, bd, color, feats, bio, u sql.NullString
		created, updated                string
	)
	if err := s.Scan(&p.ID, &p.OwnerUserID, &p.Name, &p.Species, &breed, &bd, &color, &feats, &bio, &u, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return pets.Pet{}, fmt.Errorf("decode created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return pets.Pet{}, fmt.Errorf("decode updated_at: %w", err)
	}
	if bd.Valid {
		t, err := time.Parse(time.DateOnly, bd.String)
		if err != nil {
			return pets.Pet{}, fmt.Errorf("decode birth_date: %w", err)
		}
		p.BirthDate = &t
	}

	p.Breed = fromNull(breed)
	p.Color = fromNull(color)
	p.DistinguishingFeatures = fromNull(feats)
	p.Bio = fromNull(bio)
	p.ImageURL = fromNull(u)
	return p, nil
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

// timeLayout tiene ancho fijo (nanos con ceros) para que ORDER BY sobre el TEXT
// coincida con el orden cronológico. RFC3339Nano recorta ceros: "05Z" > "05.5Z".
// Al leer se usa RFC3339Nano, que acepta ambos formatos.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.DateOnly), Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

var _ pets.Repository = (*PetsRepo)(nil)
