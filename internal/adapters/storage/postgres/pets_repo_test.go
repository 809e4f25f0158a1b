package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"pet-social/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere un Postgres real: TEST_DB_DSN=postgres://... go test ./internal/adapters/storage/postgres
func openTestRepo(t *testing.T) *PetsRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return NewPetsRepo(db)
}

func strPtr(s string) *string { return &s }

func TestPetsRepo_Lifecycle(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()
	bd := time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)

	p, err := r.Create(ctx, owner, pets.Fields{Name: "Rex", Species: "Dog", BirthDate: &bd, Bio: strPtr("good boy")}, strPtr("https://cdn/x/a.png"))
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(p.ID))
	assert.False(t, p.CreatedAt.IsZero())
	require.NotNil(t, p.BirthDate)
	assert.Equal(t, "2020-03-04", p.BirthDate.Format(time.DateOnly))

	_, err = r.GetOwned(ctx, p.ID, "someone-else")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.ErrorIs(t, r.UpdateOwned(ctx, p.ID, "someone-else", pets.Fields{Name: "X", Species: "Y"}, nil), pets.ErrNotFound)

	require.NoError(t, r.UpdateOwned(ctx, p.ID, owner, pets.Fields{Name: "Rex", Species: "Dog"}, nil))
	got, err := r.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn/x/a.png", *got.ImageURL)
	assert.Nil(t, got.Bio)

	list, err := r.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, r.DeleteOwned(ctx, p.ID, "someone-else"), pets.ErrNotFound)
	require.NoError(t, r.DeleteOwned(ctx, p.ID, owner))
	_, err = r.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.NewString()))
	assert.False(t, validID("not-a-uuid"))
	assert.False(t, validID(""))
}
