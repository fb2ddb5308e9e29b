package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	owner := "u-" + uuid.New().String()
	stranger := "u-" + uuid.New().String()

	draft := &model.Dream{
		UserID:      owner,
		Title:       "Cosmic Dream",
		Description: "I dreamt of floating through a cosmic forest with bioluminescent trees",
		ImageURL:    "data:image/svg+xml;base64,PHN2Zy8+",
		Style:       "artistic",
		Mood:        "calm",
		Elements:    []string{"dreamt", "floating", "cosmic"},
	}

	created, err := s.Dreams().Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create: id not assigned")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("Create: created_at not assigned")
	}
	if created.IsFavorite {
		t.Fatal("Create: is_favorite should default to false")
	}

	// Round-trip: field-for-field identical except server-assigned id/created_at.
	got, err := s.Dreams().Get(ctx, created.ID, owner)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != draft.UserID || got.Title != draft.Title ||
		got.Description != draft.Description || got.ImageURL != draft.ImageURL ||
		got.Style != draft.Style || got.Mood != draft.Mood {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, draft)
	}
	if len(got.Elements) != 3 || got.Elements[0] != "dreamt" {
		t.Fatalf("round-trip elements mismatch: %v", got.Elements)
	}

	// Ownership isolation: the same id under another user is not found.
	if _, err := s.Dreams().Get(ctx, created.ID, stranger); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get for stranger: want ErrNotFound, got %v", err)
	}

	// Nil elements default to an empty slice.
	second, err := s.Dreams().Create(ctx, &model.Dream{
		UserID:      owner,
		Title:       "Dream Visualization",
		Description: "a second entry long enough",
		ImageURL:    "https://img.example/2.png",
		Style:       "surreal",
		Mood:        "mysterious",
	})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.Elements == nil || len(second.Elements) != 0 {
		t.Fatalf("Create second: elements should default empty, got %v", second.Elements)
	}

	// List: owner sees both, newest first.
	lst, err := s.Dreams().List(ctx, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lst) != 2 {
		t.Fatalf("List: want 2, got %d", len(lst))
	}
	if lst[0].ID != second.ID {
		t.Fatalf("List: want newest first, got ids %d, %d", lst[0].ID, lst[1].ID)
	}
	if lst[0].CreatedAt.Before(lst[1].CreatedAt) {
		t.Fatal("List: created_at not descending")
	}

	// List for a stranger is empty, not an error.
	if lst, err := s.Dreams().List(ctx, stranger); err != nil || len(lst) != 0 {
		t.Fatalf("List stranger: n=%d err=%v", len(lst), err)
	}

	// SetFavorite: owner-only, idempotent.
	fav, err := s.Dreams().SetFavorite(ctx, created.ID, owner, true)
	if err != nil {
		t.Fatalf("SetFavorite: %v", err)
	}
	if !fav.IsFavorite {
		t.Fatal("SetFavorite: flag not set")
	}
	again, err := s.Dreams().SetFavorite(ctx, created.ID, owner, true)
	if err != nil {
		t.Fatalf("SetFavorite repeat: %v", err)
	}
	if !again.IsFavorite {
		t.Fatal("SetFavorite repeat: flag lost")
	}
	if _, err := s.Dreams().SetFavorite(ctx, created.ID, stranger, true); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("SetFavorite for stranger: want ErrNotFound, got %v", err)
	}

	// Unset works too.
	unfav, err := s.Dreams().SetFavorite(ctx, created.ID, owner, false)
	if err != nil {
		t.Fatalf("SetFavorite unset: %v", err)
	}
	if unfav.IsFavorite {
		t.Fatal("SetFavorite unset: flag still set")
	}

	// Health ping.
	if err := s.HealthPing(ctx); err != nil {
		t.Fatalf("HealthPing: %v", err)
	}
}
