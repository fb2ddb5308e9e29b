package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/dreamcanvas/server/internal/extract"
	"github.com/dreamcanvas/server/internal/imagegen"
	"github.com/dreamcanvas/server/internal/model"
	"github.com/dreamcanvas/server/internal/store"
)

const defaultTitle = "Dream Visualization"

// ImageGenerator produces a non-empty image reference for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// ElementExtractor produces 0-5 elements from a description.
type ElementExtractor interface {
	Extract(ctx context.Context, description string) []string
}

// DreamService orchestrates extraction, image generation and persistence.
type DreamService struct {
	store     store.Store
	extractor ElementExtractor
	generator ImageGenerator
}

var (
	_ ElementExtractor = (*extract.Chain)(nil)
	_ ImageGenerator   = (*imagegen.Generator)(nil)
)

func NewDreamService(s store.Store, e ElementExtractor, g ImageGenerator) *DreamService {
	return &DreamService{store: s, extractor: e, generator: g}
}

// GenerateDream runs the extract-then-generate pipeline and returns an
// unsaved Dream payload attributed to userID. It never touches the store.
func (s *DreamService) GenerateDream(ctx context.Context, userID string, req model.GenerateDreamRequest) *model.Dream {
	elements := s.extractor.Extract(ctx, req.Description)

	prompt := req.Description + ", " + req.Style + ", " + req.Mood
	imageURL := s.generator.Generate(ctx, prompt)

	return &model.Dream{
		UserID:      userID,
		Title:       synthesizeTitle(elements),
		Description: req.Description,
		ImageURL:    imageURL,
		Style:       req.Style,
		Mood:        req.Mood,
		Elements:    elements,
		IsFavorite:  false,
	}
}

// CreateDream persists a reviewed dream. The owner is always the
// authenticated caller; any client-sent user_id is discarded.
func (s *DreamService) CreateDream(ctx context.Context, userID string, d *model.Dream) (*model.Dream, error) {
	d.ID = 0
	d.UserID = userID
	if d.Elements == nil {
		d.Elements = []string{}
	}
	return s.store.Dreams().Create(ctx, d)
}

func (s *DreamService) ListDreams(ctx context.Context, userID string) ([]*model.Dream, error) {
	return s.store.Dreams().List(ctx, userID)
}

func (s *DreamService) GetDream(ctx context.Context, id int64, userID string) (*model.Dream, error) {
	return s.store.Dreams().Get(ctx, id, userID)
}

func (s *DreamService) SetFavorite(ctx context.Context, id int64, userID string, fav bool) (*model.Dream, error) {
	return s.store.Dreams().SetFavorite(ctx, id, userID, fav)
}

// synthesizeTitle derives "<Capitalized first element> Dream", or the
// fixed default when extraction produced nothing.
func synthesizeTitle(elements []string) string {
	if len(elements) == 0 || elements[0] == "" {
		return defaultTitle
	}
	first := elements[0]
	runes := []rune(first)
	runes[0] = unicode.ToUpper(runes[0])
	return strings.TrimSpace(string(runes)) + " Dream"
}
