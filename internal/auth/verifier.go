package auth

import (
	"context"

	"github.com/dreamcanvas/server/internal/model"
)

// Verifier validates a bearer token against the identity provider.
// It is the sole gate in front of every dream operation; there is no
// role or permission model beyond per-user row ownership.
type Verifier interface {
	// Verify resolves the token to an Identity, or returns
	// ErrInvalidToken when the provider rejects it.
	Verify(ctx context.Context, token string) (*model.Identity, error)
}
