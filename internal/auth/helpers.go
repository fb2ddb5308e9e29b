package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken extracts the bearer token from the Authorization header.
// Returns ErrMissingToken if the header is absent or not in "Bearer <token>" form.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrMissingToken
	}

	return parts[1], nil
}
