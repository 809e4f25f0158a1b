package sqlite

import (
	"context"
	"testing"
	"time"

	"pet-social/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsersRepo(t *testing.T) *UsersRepo {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return NewUsersRepo(db)
}

func TestUsersRepo_Upsert(t *testing.T) {
	r := newUsersRepo(t)
	ctx := context.Background()
	first := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return first }

	created, err := r.Upsert(ctx, users.User{ID: "u1", Username: "alice", Email: "a@x.io"})
	require.NoError(t, err)
	assert.True(t, first.Equal(created.CreatedAt))
	assert.Nil(t, created.FullName)

	r.now = func() time.Time { return first.Add(time.Hour) }
	updated, err := r.Upsert(ctx, users.User{ID: "u1", Username: "alice", Email: "b@x.io", FullName: strPtr("Alice")})
	require.NoError(t, err)
	assert.Equal(t, "b@x.io", updated.Email)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Alice", *updated.FullName)
	assert.True(t, first.Equal(updated.CreatedAt), "created_at no cambia en update")

	_, err = r.Upsert(ctx, users.User{ID: "u2", Username: "alice", Email: "c@x.io"})
	assert.ErrorIs(t, err, users.ErrUsernameTaken)

	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = r.GetByID(ctx, "u2")
	assert.ErrorIs(t, err, users.ErrNotFound)
}
