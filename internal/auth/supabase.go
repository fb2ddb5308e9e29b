package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/dreamcanvas/server/internal/model"
)

// SupabaseVerifier validates bearer tokens against the Supabase GoTrue
// user endpoint. Any non-2xx response or transport failure maps to
// ErrInvalidToken; the caller only ever learns valid/invalid.
type SupabaseVerifier struct {
	client *resty.Client
	log    zerolog.Logger
}

// NewSupabaseVerifier creates a verifier for the given project URL and anon key.
func NewSupabaseVerifier(baseURL, anonKey string, log zerolog.Logger) *SupabaseVerifier {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", anonKey).
		SetTimeout(10 * time.Second)

	return &SupabaseVerifier{client: c, log: log}
}

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify resolves the token via GET /auth/v1/user.
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	var user supabaseUser
	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&user).
		Get("/auth/v1/user")
	if err != nil {
		v.log.Warn().Err(err).Msg("identity provider unreachable")
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if resp.StatusCode() != http.StatusOK || user.ID == "" {
		return nil, ErrInvalidToken
	}

	return &model.Identity{UserID: user.ID, Email: user.Email}, nil
}
