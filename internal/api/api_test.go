package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamcanvas/server/internal/auth"
	"github.com/dreamcanvas/server/internal/extract"
	"github.com/dreamcanvas/server/internal/imagegen"
	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/services"
	"github.com/dreamcanvas/server/internal/store"
	"github.com/dreamcanvas/server/internal/store/sqlite"
)

type brokenStore struct{ err error }

func (b *brokenStore) Dreams() store.Dreams { return brokenDreams{err: b.err} }

func (b *brokenStore) HealthPing(ctx context.Context) error { return b.err }

type brokenDreams struct{ err error }

func (d brokenDreams) List(ctx context.Context, userID string) ([]*model.Dream, error) {
	return nil, d.err
}
func (d brokenDreams) Get(ctx context.Context, id int64, userID string) (*model.Dream, error) {
	return nil, d.err
}
func (d brokenDreams) Create(ctx context.Context, dr *model.Dream) (*model.Dream, error) {
	return nil, d.err
}
func (d brokenDreams) SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error) {
	return nil, d.err
}

// newTestServer wires the full stack over an in-memory SQLite store, the
// local dev verifier, the keyword extractor and the SVG fallback generator.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Bootstrap(context.Background(), db))

	log := zerolog.Nop()
	st := sqlite.NewWithDB(db)
	svc := services.NewDreamService(st, extract.NewChain(nil, log), imagegen.NewGenerator(log))

	srv := httptest.NewServer(NewRouter(svc, auth.NewStaticVerifier("")))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeDream(t *testing.T, resp *http.Response) model.Dream {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var d model.Dream
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	return d
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body, "status")
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		name   string
		method string
		path   string
	}{
		{"list", "GET", "/api/dreams"},
		{"create", "POST", "/api/dreams"},
		{"generate", "POST", "/api/dreams/generate"},
		{"get", "GET", "/api/dreams/1"},
		{"favorite", "PATCH", "/api/dreams/1/favorite"},
	} {
		t.Run(tc.name+" no token", func(t *testing.T) {
			resp := doJSON(t, tc.method, srv.URL+tc.path, "", nil)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
		t.Run(tc.name+" bad token", func(t *testing.T) {
			resp := doJSON(t, tc.method, srv.URL+tc.path, "wrong-token", nil)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGenerateDream(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/dreams/generate", auth.LocalDevToken, map[string]string{
		"description": "I dreamt I was floating through a cosmic forest",
		"style":       "artistic",
		"mood":        "peaceful",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	d := decodeDream(t, resp)

	assert.Equal(t, "Dreamt Dream", d.Title)
	assert.Equal(t, []string{"dreamt", "floating", "through", "cosmic", "forest"}, d.Elements)
	assert.True(t, strings.HasPrefix(d.ImageURL, "data:image/svg+xml;base64,"), d.ImageURL)
	assert.Equal(t, "artistic", d.Style)
	assert.Equal(t, "peaceful", d.Mood)
	assert.False(t, d.IsFavorite)
	assert.Zero(t, d.ID)

	// Generation must not persist anything.
	listResp := doJSON(t, "GET", srv.URL+"/api/dreams", auth.LocalDevToken, nil)
	defer func() { _ = listResp.Body.Close() }()
	var list []model.Dream
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestGenerateDreamValidation(t *testing.T) {
	srv := newTestServer(t)

	// 9 characters fails, 10 passes.
	resp := doJSON(t, "POST", srv.URL+"/api/dreams/generate", auth.LocalDevToken, map[string]string{
		"description": strings.Repeat("x", 9),
		"style":       "artistic",
		"mood":        "calm",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "description must be at least 10 characters", errBody["message"])

	ok := doJSON(t, "POST", srv.URL+"/api/dreams/generate", auth.LocalDevToken, map[string]string{
		"description": strings.Repeat("x", 10),
		"style":       "artistic",
		"mood":        "calm",
	})
	defer func() { _ = ok.Body.Close() }()
	assert.Equal(t, http.StatusOK, ok.StatusCode)
}

func TestDreamLifecycle(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]interface{}{
		"user_id":     "someone-else", // must be overridden by the server
		"title":       "Cosmic Dream",
		"description": "floating through a cosmic forest",
		"image_url":   "data:image/svg+xml;base64,abcd",
		"style":       "artistic",
		"mood":        "peaceful",
		"elements":    []string{"cosmic", "forest"},
	}

	createResp := doJSON(t, "POST", srv.URL+"/api/dreams", auth.LocalDevToken, payload)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeDream(t, createResp)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "dreamcanvas-dev", created.UserID)
	assert.False(t, created.CreatedAt.IsZero())

	// Get by id
	getResp := doJSON(t, "GET", fmt.Sprintf("%s/api/dreams/%d", srv.URL, created.ID), auth.LocalDevToken, nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	got := decodeDream(t, getResp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Cosmic Dream", got.Title)

	// Unknown id
	missingResp := doJSON(t, "GET", srv.URL+"/api/dreams/999999", auth.LocalDevToken, nil)
	defer func() { _ = missingResp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, missingResp.StatusCode)

	// List contains the new dream
	listResp := doJSON(t, "GET", srv.URL+"/api/dreams", auth.LocalDevToken, nil)
	defer func() { _ = listResp.Body.Close() }()
	var list []model.Dream
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Favorite on
	favResp := doJSON(t, "PATCH", fmt.Sprintf("%s/api/dreams/%d/favorite", srv.URL, created.ID), auth.LocalDevToken,
		map[string]bool{"isFavorite": true})
	require.Equal(t, http.StatusOK, favResp.StatusCode)
	fav := decodeDream(t, favResp)
	assert.True(t, fav.IsFavorite)

	// Favorite off again
	unfavResp := doJSON(t, "PATCH", fmt.Sprintf("%s/api/dreams/%d/favorite", srv.URL, created.ID), auth.LocalDevToken,
		map[string]bool{"isFavorite": false})
	require.Equal(t, http.StatusOK, unfavResp.StatusCode)
	unfav := decodeDream(t, unfavResp)
	assert.False(t, unfav.IsFavorite)
}

func TestCreateDreamValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, "POST", srv.URL+"/api/dreams", auth.LocalDevToken, map[string]interface{}{
		"title":       "No Image Dream",
		"description": "a dream without an image reference",
		"style":       "artistic",
		"mood":        "calm",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "image_url is required", errBody["message"])
}

func TestSetFavoriteStrictBoolean(t *testing.T) {
	srv := newTestServer(t)

	createResp := doJSON(t, "POST", srv.URL+"/api/dreams", auth.LocalDevToken, map[string]interface{}{
		"title":       "Strict Dream",
		"description": "a dream used for favorite checks",
		"image_url":   "data:image/svg+xml;base64,abcd",
		"style":       "artistic",
		"mood":        "calm",
	})
	require.Equal(t, http.StatusCreated, createResp.StatusCode)
	created := decodeDream(t, createResp)

	favResp := doJSON(t, "PATCH", fmt.Sprintf("%s/api/dreams/%d/favorite", srv.URL, created.ID), auth.LocalDevToken,
		map[string]bool{"isFavorite": true})
	require.Equal(t, http.StatusOK, favResp.StatusCode)
	_ = favResp.Body.Close()

	for _, body := range []string{`{"isFavorite":"true"}`, `{"isFavorite":1}`, `{"isFavorite":null}`, `{}`} {
		req, err := http.NewRequest("PATCH",
			fmt.Sprintf("%s/api/dreams/%d/favorite", srv.URL, created.ID),
			strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+auth.LocalDevToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		var errBody map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Equal(t, "isFavorite must be a boolean", errBody["message"])
		_ = resp.Body.Close()
	}

	// Rejected payloads must not have flipped the flag.
	getResp := doJSON(t, "GET", fmt.Sprintf("%s/api/dreams/%d", srv.URL, created.ID), auth.LocalDevToken, nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.True(t, decodeDream(t, getResp).IsFavorite)
}

func TestReadFailuresDegrade(t *testing.T) {
	log := zerolog.Nop()
	svc := services.NewDreamService(&brokenStore{err: errors.New("connection refused")},
		extract.NewChain(nil, log), imagegen.NewGenerator(log))
	srv := httptest.NewServer(NewRouter(svc, auth.NewStaticVerifier("")))
	defer srv.Close()

	// Failed lookups read as not found.
	getResp := doJSON(t, "GET", srv.URL+"/api/dreams/1", auth.LocalDevToken, nil)
	defer func() { _ = getResp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// A failed list reads as an empty gallery.
	listResp := doJSON(t, "GET", srv.URL+"/api/dreams", auth.LocalDevToken, nil)
	defer func() { _ = listResp.Body.Close() }()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	var list []model.Dream
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Empty(t, list)

	// Write failures still surface.
	createResp := doJSON(t, "POST", srv.URL+"/api/dreams", auth.LocalDevToken, map[string]interface{}{
		"title":       "Broken Store Dream",
		"description": "a dream that cannot be persisted",
		"image_url":   "https://img.example/1.png",
		"style":       "artistic",
		"mood":        "calm",
	})
	defer func() { _ = createResp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, createResp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest("OPTIONS", srv.URL+"/api/dreams", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PATCH")
}
