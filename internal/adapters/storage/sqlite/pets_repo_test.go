package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pet-social/internal/domain/pets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T, path string) *PetsRepo {
	t.Helper()
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db)) // idempotente
	return NewPetsRepo(db)
}

func strPtr(s string) *string { return &s }

func TestPetsRepo_CreateAndGet(t *testing.T) {
	r := newRepo(t, ":memory:")
	ctx := context.Background()
	ts := time.Date(2024, 6, 1, 10, 30, 0, 123, time.UTC)
	r.now = func() time.Time { return ts }
	bd := time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC)

	p, err := r.Create(ctx, "u1", pets.Fields{
		Name:      "Rex",
		Species:   "Dog",
		Breed:     strPtr("Lab"),
		BirthDate: &bd,
	}, strPtr("http://localhost/assets/u1/pet_images/a.png"))
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(p.ID))
	assert.Equal(t, ts, p.CreatedAt)
	require.NotNil(t, p.BirthDate)
	assert.True(t, bd.Equal(*p.BirthDate))
	require.NotNil(t, p.Breed)
	assert.Equal(t, "Lab", *p.Breed)
	assert.Nil(t, p.Color)

	_, err = r.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetsRepo_OwnedFilter(t *testing.T) {
	r := newRepo(t, filepath.Join(t.TempDir(), "db", "pets.db"))
	ctx := context.Background()

	p, err := r.Create(ctx, "u1", pets.Fields{Name: "Rex", Species: "Dog"}, strPtr("http://x/assets/a.png"))
	require.NoError(t, err)

	_, err = r.GetOwned(ctx, p.ID, "u2")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.ErrorIs(t, r.UpdateOwned(ctx, p.ID, "u2", pets.Fields{Name: "X", Species: "Y"}, nil), pets.ErrNotFound)
	assert.ErrorIs(t, r.DeleteOwned(ctx, p.ID, "u2"), pets.ErrNotFound)

	require.NoError(t, r.UpdateOwned(ctx, p.ID, "u1", pets.Fields{Name: "Rex", Species: "Wolf"}, nil))
	got, err := r.GetOwned(ctx, p.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Wolf", got.Species)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "http://x/assets/a.png", *got.ImageURL)

	require.NoError(t, r.UpdateOwned(ctx, p.ID, "u1", pets.Fields{Name: "Rex", Species: "Wolf"}, strPtr("http://x/assets/b.png")))
	urls, err := r.ListImageURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://x/assets/b.png"}, urls)

	require.NoError(t, r.DeleteOwned(ctx, p.ID, "u1"))
	_, err = r.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetsRepo_ListByOwner(t *testing.T) {
	r := newRepo(t, ":memory:")
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	r.now = func() time.Time { n++; return base.Add(time.Duration(n) * time.Second) }

	a, err := r.Create(ctx, "u1", pets.Fields{Name: "A", Species: "cat"}, nil)
	require.NoError(t, err)
	_, err = r.Create(ctx, "u2", pets.Fields{Name: "B", Species: "cat"}, nil)
	require.NoError(t, err)
	c, err := r.Create(ctx, "u1", pets.Fields{Name: "C", Species: "cat"}, nil)
	require.NoError(t, err)

	items, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	urls, err := r.ListImageURLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestPetsRepo_ListByOwner_SubsecondOrder(t *testing.T) {
	r := newRepo(t, ":memory:")
	ctx := context.Background()
	times := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 5, 500_000_000, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 5, 500_000_001, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 10, 0, time.UTC),
	}
	var want []string
	for i, ts := range times {
		r.now = func() time.Time { return ts }
		p, err := r.Create(ctx, "u1", pets.Fields{Name: string(rune('A' + i)), Species: "cat"}, nil)
		require.NoError(t, err)
		want = append(want, p.ID)
	}

	items, err := r.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	got := make([]string, 0, len(items))
	for i, p := range items {
		got = append(got, p.ID)
		assert.True(t, times[i].Equal(p.CreatedAt), "created_at round-trip %d", i)
	}
	assert.Equal(t, want, got)
}

func TestFormatTime_FixedWidth(t *testing.T) {
	a := formatTime(time.Date(2024, 1, 1, 0, 0, 5, 0, time.UTC))
	b := formatTime(time.Date(2024, 1, 1, 0, 0, 5, 500_000_000, time.FixedZone("ART", -3*3600)))
	assert.Equal(t, "2024-01-01T00:00:05.000000000Z", a)
	assert.Equal(t, "2024-01-01T03:00:05.500000000Z", b)
	assert.Len(t, b, len(a))
}
