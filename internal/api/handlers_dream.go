package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/dreamcanvas/server/internal/api/respond"
	"github.com/dreamcanvas/server/internal/api/validate"
	"github.com/dreamcanvas/server/internal/auth"
	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/services"
)

type DreamHandler struct {
	svc      *services.DreamService
	verifier auth.Verifier
}

func NewDreamHandler(svc *services.DreamService, verifier auth.Verifier) *DreamHandler {
	return &DreamHandler{svc: svc, verifier: verifier}
}

// identify resolves the caller from the Authorization header. On failure it
// writes 401 and reports false.
func (h *DreamHandler) identify(w http.ResponseWriter, r *http.Request) (*model.Identity, bool) {
	token, err := auth.ExtractBearerToken(r)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil, false
	}
	ident, err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil, false
	}
	return ident, true
}

// GenerateDream POST /api/dreams/generate
// Runs the pipeline and returns an unsaved dream payload for review.
func (h *DreamHandler) GenerateDream(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req model.GenerateDreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.GenerateDreamRequest(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out := h.svc.GenerateDream(r.Context(), ident.UserID, req)
	respond.WriteJSON(w, http.StatusOK, out)
}

// CreateDream POST /api/dreams
func (h *DreamHandler) CreateDream(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identify(w, r)
	if !ok {
		return
	}

	var d model.Dream
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.DreamInsert(d); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.CreateDream(r.Context(), ident.UserID, &d)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// ListDreams GET /api/dreams
func (h *DreamHandler) ListDreams(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identify(w, r)
	if !ok {
		return
	}

	out, err := h.svc.ListDreams(r.Context(), ident.UserID)
	if err != nil {
		// Read failures degrade to an empty gallery rather than an error page.
		log.Warn().Err(err).Str("user_id", ident.UserID).Msg("dream list failed, returning empty")
		out = nil
	}
	if out == nil {
		out = []*model.Dream{}
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// GetDream GET /api/dreams/{id}
func (h *DreamHandler) GetDream(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identify(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.WriteBadRequest(w, "invalid dream id")
		return
	}

	out, err := h.svc.GetDream(r.Context(), id, ident.UserID)
	if err != nil {
		// Lookup failures degrade to not-found; only writes surface 500s.
		if !errors.Is(err, model.ErrNotFound) {
			log.Warn().Err(err).Int64("dream_id", id).Msg("dream lookup failed, returning not found")
		}
		respond.WriteNotFound(w, "dream not found")
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// SetFavorite PATCH /api/dreams/{id}/favorite
// The body must carry a real boolean; stringified booleans are rejected.
func (h *DreamHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identify(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respond.WriteBadRequest(w, "invalid dream id")
		return
	}

	var body struct {
		IsFavorite json.RawMessage `json:"isFavorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	fav, err := validate.Bool("isFavorite", body.IsFavorite)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	out, err := h.svc.SetFavorite(r.Context(), id, ident.UserID, fav)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			respond.WriteNotFound(w, "dream not found")
			return
		}
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
