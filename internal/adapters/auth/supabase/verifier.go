package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-social/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier usando Supabase Auth.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.GetUser(ctx, token)
	if err != nil {
		// El middleware decide si corta o no.
		return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
	}
	return claims, nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)
