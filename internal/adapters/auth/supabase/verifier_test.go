package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.Header.Get("Authorization") {
		case "Bearer good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":" user-1 ","email":"a@b.c","role":"authenticated"}`))
		case "Bearer noid":
			_, _ = w.Write([]byte(`{"email":"a@b.c"}`))
		case "Bearer boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newVerifier(t *testing.T, base string) *Verifier {
	t.Helper()
	c, err := NewClient(Config{BaseURL: base, APIKey: "anon"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerifier_OK(t *testing.T) {
	v := newVerifier(t, newGoTrue(t).URL)

	claims, err := v.Verify(context.Background(), " good ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "authenticated", claims.Role)
}

func TestVerifier_Errors(t *testing.T) {
	v := newVerifier(t, newGoTrue(t).URL)
	ctx := context.Background()

	_, err := v.Verify(ctx, "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(ctx, "boom")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(ctx, "noid")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = v.Verify(ctx, "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestVerifier_NotConfigured(t *testing.T) {
	v := newVerifier(t, "")
	_, err := v.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrNotConfigured)

	var nilV *Verifier
	_, err = nilV.Verify(context.Background(), "good")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
