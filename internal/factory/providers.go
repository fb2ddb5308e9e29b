package factory

import (
	"github.com/rs/zerolog"

	"github.com/dreamcanvas/server/internal/config"
	"github.com/dreamcanvas/server/internal/extract"
	"github.com/dreamcanvas/server/internal/imagegen"
)

// NewExtractor builds the element-extraction chain. The OpenAI backend is
// optional; the keyword fallback is always present.
func NewExtractor(cfg *config.Config, log zerolog.Logger) *extract.Chain {
	var primary extract.Extractor
	if cfg.OpenAIAPIKey != "" {
		primary = extract.NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
		log.Info().Str("model", cfg.OpenAIModel).Msg("llm element extractor configured")
	}
	return extract.NewChain(primary, log)
}

// NewImageGenerator builds the provider chain in configured order:
// Hugging Face, then Replicate, then the local SVG fallback.
func NewImageGenerator(cfg *config.Config, log zerolog.Logger) *imagegen.Generator {
	var providers []imagegen.Provider
	if cfg.HuggingFaceAPIKey != "" {
		providers = append(providers, imagegen.NewHuggingFaceProvider(cfg.HuggingFaceAPIKey, cfg.HuggingFaceModel, ""))
	}
	if cfg.ReplicateAPIToken != "" {
		providers = append(providers, imagegen.NewReplicateProvider(cfg.ReplicateAPIToken, ""))
	}
	log.Info().Int("providers", len(providers)).Msg("image generator configured")
	return imagegen.NewGenerator(log, providers...)
}
