package auth

import (
	"context"

	"github.com/dreamcanvas/server/internal/model"
)

const (
	// LocalDevToken is the fallback bearer token for local development
	// when no token is configured explicitly.
	LocalDevToken = "dreamcanvas-dev-token"

	localDevUserID = "dreamcanvas-dev"
)

// StaticVerifier accepts a single configured token and resolves it to a
// fixed local development identity. It is used when no identity provider
// is configured.
type StaticVerifier struct {
	token string
}

// NewStaticVerifier creates a StaticVerifier. An empty token falls back
// to LocalDevToken.
func NewStaticVerifier(token string) *StaticVerifier {
	if token == "" {
		token = LocalDevToken
	}
	return &StaticVerifier{token: token}
}

// Verify accepts only the configured token.
func (s *StaticVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if token != s.token {
		return nil, ErrInvalidToken
	}
	return &model.Identity{UserID: localDevUserID}, nil
}
